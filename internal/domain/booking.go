package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusFailed    BookingStatus = "failed"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// Booking is an append-only record of a confirmed checkout. Confirmed
// bookings are terminal and never mutated or deleted.
type Booking struct {
	ID             string        `json:"id"`
	Reference      string        `json:"reference"` // human-shareable display code, e.g. HUF3K9QZ
	ExperienceID   string        `json:"experience_id"`
	FullName       string        `json:"full_name"`
	Email          string        `json:"email"`
	Date           string        `json:"date"` // opaque display label
	Time           string        `json:"time"` // opaque display label
	Quantity       int           `json:"quantity"`
	Subtotal       int64         `json:"subtotal"`
	Taxes          int64         `json:"taxes"`
	Discount       int64         `json:"discount"`
	Total          int64         `json:"total"`
	PromoCode      string        `json:"promo_code,omitempty"`
	IdempotencyKey string        `json:"idempotency_key,omitempty"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Validate validates all booking fields
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.ExperienceID) == "" {
		return ErrInvalidExperienceID
	}
	if strings.TrimSpace(b.FullName) == "" {
		return ErrInvalidFullName
	}
	if strings.TrimSpace(b.Email) == "" {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(b.Date) == "" {
		return ErrInvalidDate
	}
	if strings.TrimSpace(b.Time) == "" {
		return ErrInvalidTimeSlot
	}
	if b.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if b.Discount < 0 {
		return ErrInvalidDiscount
	}
	if b.Total != b.Subtotal+b.Taxes-b.Discount {
		return ErrInconsistentTotals
	}
	return nil
}

// IsConfirmed returns true if the booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}
