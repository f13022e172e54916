package dto

import (
	"time"

	"github.com/trailhuf/experiences-api/internal/domain"
)

// CreateBookingRequest represents a request to book an experience
type CreateBookingRequest struct {
	ExperienceID   string `json:"experience_id" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	PromoCode      string `json:"promo_code,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// CreateBookingResponse represents the result of a booking submission
type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id"`
	Subtotal  int64  `json:"subtotal"`
	Taxes     int64  `json:"taxes"`
	Discount  int64  `json:"discount"`
	Total     int64  `json:"total"`
	Status    string `json:"status"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID           string    `json:"id"`
	Reference    string    `json:"reference"`
	ExperienceID string    `json:"experience_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Quantity     int       `json:"quantity"`
	Subtotal     int64     `json:"subtotal"`
	Taxes        int64     `json:"taxes"`
	Discount     int64     `json:"discount"`
	Total        int64     `json:"total"`
	PromoCode    string    `json:"promo_code,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateBookingResponseFromDomain converts a confirmed booking into the
// submission response payload.
func CreateBookingResponseFromDomain(b *domain.Booking) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success:   b.IsConfirmed(),
		BookingID: b.Reference,
		Subtotal:  b.Subtotal,
		Taxes:     b.Taxes,
		Discount:  b.Discount,
		Total:     b.Total,
		Status:    b.Status.String(),
	}
}

// BookingFromDomain converts a domain Booking to BookingResponse
func BookingFromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID,
		Reference:    b.Reference,
		ExperienceID: b.ExperienceID,
		FullName:     b.FullName,
		Email:        b.Email,
		Date:         b.Date,
		Time:         b.Time,
		Quantity:     b.Quantity,
		Subtotal:     b.Subtotal,
		Taxes:        b.Taxes,
		Discount:     b.Discount,
		Total:        b.Total,
		PromoCode:    b.PromoCode,
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
	}
}
