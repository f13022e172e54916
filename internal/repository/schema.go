package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS experiences (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		location        TEXT NOT NULL,
		description     TEXT,
		price           BIGINT NOT NULL,
		image           TEXT,
		available_dates TEXT[] NOT NULL DEFAULT '{}',
		position        INT NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS experience_time_slots (
		experience_id TEXT NOT NULL REFERENCES experiences(id) ON DELETE CASCADE,
		time_label    TEXT NOT NULL,
		available     INT NOT NULL CHECK (available >= 0),
		sold_out      BOOLEAN NOT NULL DEFAULT false,
		position      INT NOT NULL DEFAULT 0,
		PRIMARY KEY (experience_id, time_label)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id              TEXT PRIMARY KEY,
		reference       TEXT NOT NULL UNIQUE,
		experience_id   TEXT NOT NULL,
		full_name       TEXT NOT NULL,
		email           TEXT NOT NULL,
		booking_date    TEXT NOT NULL,
		booking_time    TEXT NOT NULL,
		quantity        INT NOT NULL,
		subtotal        BIGINT NOT NULL,
		taxes           BIGINT NOT NULL,
		discount        BIGINT NOT NULL,
		total           BIGINT NOT NULL,
		promo_code      TEXT,
		idempotency_key TEXT UNIQUE,
		status          TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_reference ON bookings (reference)`,
}

// EnsureSchema creates the tables this service needs if they do not exist.
// Statements are idempotent so it is safe to run on every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
