package domain

import "time"

// Experience represents a bookable experience in the catalog.
// Catalog entries are immutable during normal operation; they are only
// replaced wholesale by a reseed.
type Experience struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	Price          int64      `json:"price"` // smallest currency unit
	Image          string     `json:"image"`
	AvailableDates []string   `json:"available_dates"` // opaque display labels, order preserved
	TimeSlots      []TimeSlot `json:"time_slots"`      // order preserved
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TimeSlot is a bookable slot within an experience. TimeLabel is unique
// within its experience. SoldOut must equal (Available == 0) after every
// mutation, and Available never goes negative.
type TimeSlot struct {
	TimeLabel string `json:"time"`
	Available int    `json:"available"`
	SoldOut   bool   `json:"sold_out"`
}

// Slot returns the time slot with the given label, if present.
func (e *Experience) Slot(timeLabel string) (*TimeSlot, bool) {
	for i := range e.TimeSlots {
		if e.TimeSlots[i].TimeLabel == timeLabel {
			return &e.TimeSlots[i], true
		}
	}
	return nil, false
}

// OffersDate reports whether the experience lists the given date label.
func (e *Experience) OffersDate(date string) bool {
	for _, d := range e.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}

// CanReserve reports whether the slot exists, is not sold out, and has at
// least quantity seats remaining.
func (e *Experience) CanReserve(timeLabel string, quantity int) bool {
	slot, ok := e.Slot(timeLabel)
	if !ok {
		return false
	}
	return !slot.SoldOut && slot.Available >= quantity
}
