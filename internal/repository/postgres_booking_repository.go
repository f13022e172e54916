package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trailhuf/experiences-api/internal/domain"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

const bookingColumns = `id, reference, experience_id, full_name, email,
	booking_date, booking_time, quantity, subtotal, taxes, discount, total,
	COALESCE(promo_code, '') as promo_code,
	COALESCE(idempotency_key, '') as idempotency_key,
	status, created_at`

func (r *PostgresBookingRepository) scanBooking(row pgx.Row) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var status string
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ExperienceID,
		&booking.FullName,
		&booking.Email,
		&booking.Date,
		&booking.Time,
		&booking.Quantity,
		&booking.Subtotal,
		&booking.Taxes,
		&booking.Discount,
		&booking.Total,
		&booking.PromoCode,
		&booking.IdempotencyKey,
		&status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatus(status)
	return booking, nil
}

// Create persists a new booking
func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, reference, experience_id, full_name, email,
			booking_date, booking_time, quantity, subtotal, taxes,
			discount, total, promo_code, idempotency_key, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, NULLIF($13, ''), NULLIF($14, ''), $15, $16
		)
	`
	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.ExperienceID,
		booking.FullName,
		booking.Email,
		booking.Date,
		booking.Time,
		booking.Quantity,
		booking.Subtotal,
		booking.Taxes,
		booking.Discount,
		booking.Total,
		booking.PromoCode,
		booking.IdempotencyKey,
		booking.Status.String(),
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its internal ID
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	booking, err := r.scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetByReference retrieves a booking by its public reference
func (r *PostgresBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE reference = $1`, bookingColumns)
	booking, err := r.scanBooking(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by reference: %w", err)
	}
	return booking, nil
}

// GetByIdempotencyKey retrieves a booking by idempotency key. Returns
// (nil, nil) when no booking has been recorded for the key.
func (r *PostgresBookingRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	if key == "" {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE idempotency_key = $1`, bookingColumns)
	booking, err := r.scanBooking(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking by idempotency key: %w", err)
	}
	return booking, nil
}

// ReferenceExists reports whether a booking reference is already taken
func (r *PostgresBookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE reference = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reference: %w", err)
	}
	return exists, nil
}
