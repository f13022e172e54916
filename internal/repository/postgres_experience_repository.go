package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trailhuf/experiences-api/internal/domain"
)

// PostgresExperienceRepository implements ExperienceRepository using PostgreSQL
type PostgresExperienceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresExperienceRepository creates a new PostgresExperienceRepository
func NewPostgresExperienceRepository(pool *pgxpool.Pool) *PostgresExperienceRepository {
	return &PostgresExperienceRepository{pool: pool}
}

const experienceColumns = `id, name, location,
	COALESCE(description, '') as description,
	price,
	COALESCE(image, '') as image,
	available_dates, created_at, updated_at`

func (r *PostgresExperienceRepository) scanExperience(row pgx.Row) (*domain.Experience, error) {
	exp := &domain.Experience{}
	err := row.Scan(
		&exp.ID,
		&exp.Name,
		&exp.Location,
		&exp.Description,
		&exp.Price,
		&exp.Image,
		&exp.AvailableDates,
		&exp.CreatedAt,
		&exp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if exp.AvailableDates == nil {
		exp.AvailableDates = []string{}
	}
	return exp, nil
}

// loadTimeSlots fetches the time slots for a set of experiences and attaches
// them in display order.
func (r *PostgresExperienceRepository) loadTimeSlots(ctx context.Context, experiences []*domain.Experience) error {
	if len(experiences) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Experience, len(experiences))
	ids := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		byID[exp.ID] = exp
		ids = append(ids, exp.ID)
	}

	query := `
		SELECT experience_id, time_label, available, sold_out
		FROM experience_time_slots
		WHERE experience_id = ANY($1)
		ORDER BY experience_id, position
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load time slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var experienceID string
		var slot domain.TimeSlot
		if err := rows.Scan(&experienceID, &slot.TimeLabel, &slot.Available, &slot.SoldOut); err != nil {
			return fmt.Errorf("failed to scan time slot: %w", err)
		}
		if exp, ok := byID[experienceID]; ok {
			exp.TimeSlots = append(exp.TimeSlots, slot)
		}
	}
	return rows.Err()
}

// List retrieves experiences, optionally filtered by a search term
func (r *PostgresExperienceRepository) List(ctx context.Context, search string) ([]*domain.Experience, error) {
	query := fmt.Sprintf(`SELECT %s FROM experiences`, experienceColumns)
	var args []interface{}
	if search != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY position`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	var experiences []*domain.Experience
	for rows.Next() {
		exp, err := r.scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read experiences: %w", err)
	}

	if err := r.loadTimeSlots(ctx, experiences); err != nil {
		return nil, err
	}
	return experiences, nil
}

// GetByID retrieves an experience by ID
func (r *PostgresExperienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	query := fmt.Sprintf(`SELECT %s FROM experiences WHERE id = $1`, experienceColumns)
	exp, err := r.scanExperience(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExperienceNotFound
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	if err := r.loadTimeSlots(ctx, []*domain.Experience{exp}); err != nil {
		return nil, err
	}
	return exp, nil
}

// ReplaceAll replaces the whole catalog in a single transaction
func (r *PostgresExperienceRepository) ReplaceAll(ctx context.Context, experiences []*domain.Experience) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE experience_time_slots, experiences`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	insertExperience := `
		INSERT INTO experiences (id, name, location, description, price, image, available_dates, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	insertSlot := `
		INSERT INTO experience_time_slots (experience_id, time_label, available, sold_out, position)
		VALUES ($1, $2, $3, $4, $5)
	`

	for pos, exp := range experiences {
		_, err := tx.Exec(ctx, insertExperience,
			exp.ID,
			exp.Name,
			exp.Location,
			exp.Description,
			exp.Price,
			exp.Image,
			exp.AvailableDates,
			pos,
			exp.CreatedAt,
			exp.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert experience %s: %w", exp.ID, err)
		}
		for i, slot := range exp.TimeSlots {
			_, err := tx.Exec(ctx, insertSlot, exp.ID, slot.TimeLabel, slot.Available, slot.SoldOut, i)
			if err != nil {
				return fmt.Errorf("failed to insert time slot %s/%s: %w", exp.ID, slot.TimeLabel, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// ReserveSlot atomically decrements a time slot's capacity. The conditional
// UPDATE is the only writer of available, so concurrent reservations cannot
// take the slot below zero.
func (r *PostgresExperienceRepository) ReserveSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error {
	query := `
		UPDATE experience_time_slots
		SET available = available - $3,
		    sold_out = (available - $3) <= 0
		WHERE experience_id = $1 AND time_label = $2 AND available >= $3
	`
	result, err := r.pool.Exec(ctx, query, experienceID, timeLabel, quantity)
	if err != nil {
		return fmt.Errorf("failed to reserve slot: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	// No row updated: either the slot does not exist or it lacks capacity.
	var available int
	err = r.pool.QueryRow(ctx,
		`SELECT available FROM experience_time_slots WHERE experience_id = $1 AND time_label = $2`,
		experienceID, timeLabel,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrSlotNotFound
		}
		return fmt.Errorf("failed to check slot: %w", err)
	}
	if available == 0 {
		return domain.ErrSlotSoldOut
	}
	return domain.ErrSlotUnavailable
}

// ReleaseSlot returns previously reserved capacity to a time slot
func (r *PostgresExperienceRepository) ReleaseSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error {
	query := `
		UPDATE experience_time_slots
		SET available = available + $3,
		    sold_out = false
		WHERE experience_id = $1 AND time_label = $2
	`
	result, err := r.pool.Exec(ctx, query, experienceID, timeLabel, quantity)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}
