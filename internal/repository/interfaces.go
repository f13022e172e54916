package repository

import (
	"context"

	"github.com/trailhuf/experiences-api/internal/domain"
)

// ExperienceRepository defines the interface for experience data access
type ExperienceRepository interface {
	// List retrieves experiences in catalog order, optionally filtered by
	// a search term matched against the experience name
	List(ctx context.Context, search string) ([]*domain.Experience, error)
	// GetByID retrieves an experience by ID
	GetByID(ctx context.Context, id string) (*domain.Experience, error)
	// ReplaceAll replaces the whole catalog in a single transaction
	ReplaceAll(ctx context.Context, experiences []*domain.Experience) error
	// ReserveSlot atomically decrements a time slot's capacity. It returns
	// domain.ErrSlotNotFound when the slot does not exist and
	// domain.ErrSlotUnavailable when capacity is insufficient.
	ReserveSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error
	// ReleaseSlot returns previously reserved capacity to a time slot
	ReleaseSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	// Create persists a new booking
	Create(ctx context.Context, booking *domain.Booking) error
	// GetByID retrieves a booking by its internal ID
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// GetByReference retrieves a booking by its public reference
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	// GetByIdempotencyKey retrieves a booking by idempotency key.
	// Returns (nil, nil) when no booking has been recorded for the key.
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	// ReferenceExists reports whether a booking reference is already taken
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}
