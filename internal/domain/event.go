package domain

import "time"

// BookingEventType identifies a booking lifecycle event
type BookingEventType string

const (
	BookingEventCreated BookingEventType = "booking.created"
)

// BookingEvent is the payload published to the event stream for each
// booking lifecycle transition.
type BookingEvent struct {
	EventID      string           `json:"event_id"`
	EventType    BookingEventType `json:"event_type"`
	BookingID    string           `json:"booking_id"`
	Reference    string           `json:"reference"`
	ExperienceID string           `json:"experience_id"`
	Date         string           `json:"date"`
	Time         string           `json:"time"`
	Quantity     int              `json:"quantity"`
	Total        int64            `json:"total"`
	Status       string           `json:"status"`
	OccurredAt   time.Time        `json:"occurred_at"`
}

// NewBookingEvent builds an event from a booking record
func NewBookingEvent(eventType BookingEventType, booking *Booking, eventID string) *BookingEvent {
	return &BookingEvent{
		EventID:      eventID,
		EventType:    eventType,
		BookingID:    booking.ID,
		Reference:    booking.Reference,
		ExperienceID: booking.ExperienceID,
		Date:         booking.Date,
		Time:         booking.Time,
		Quantity:     booking.Quantity,
		Total:        booking.Total,
		Status:       booking.Status.String(),
		OccurredAt:   time.Now(),
	}
}

// Key returns the partition key for the event. Events for the same
// experience land on the same partition so per-experience ordering holds.
func (e *BookingEvent) Key() string {
	return e.ExperienceID
}
