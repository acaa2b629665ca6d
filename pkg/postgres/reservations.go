package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

// GetReservations loads the full reservation log in insertion order.
func (d *DB) GetReservations(ctx context.Context) ([]model.Reservation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, date, start_min, end_min, team, room, kind
		FROM reservations
		ORDER BY inserted_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var r model.Reservation
		var date time.Time
		var team, room, kind string
		if err := rows.Scan(&r.ID, &date, &r.Start, &r.End, &team, &room, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		r.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, model.KST)
		r.Team = model.Team(team)
		r.Room = model.Room(room)
		r.Kind = model.Kind(kind)
		reservations = append(reservations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", err)
	}

	return reservations, nil
}

// ReplaceReservations overwrites the reservation table with the supplied log,
// mirroring the whole-table overwrite the sheets backend performs.
func (d *DB) ReplaceReservations(ctx context.Context, reservations []model.Reservation) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reservations`); err != nil {
		return fmt.Errorf("failed to clear reservations: %w", err)
	}

	for _, r := range reservations {
		_, err := tx.Exec(ctx, `
			INSERT INTO reservations (id, date, start_min, end_min, team, room, kind)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.ID, model.FormatDate(r.Date), r.Start, r.End, string(r.Team), string(r.Room), string(r.Kind))
		if err != nil {
			return fmt.Errorf("failed to insert reservation %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reservations: %w", err)
	}
	return nil
}

// GetRotationCursor returns the persisted next_team_index, or 0 when the
// state row is missing.
func (d *DB) GetRotationCursor(ctx context.Context) (int, error) {
	var cursor int
	err := d.pool.QueryRow(ctx, `SELECT next_team_index FROM rotation_state`).Scan(&cursor)
	if err != nil {
		// A missing row means the scheduler has never run.
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to query rotation state: %w", err)
	}
	if cursor < 0 {
		return 0, nil
	}
	return cursor, nil
}

// SaveRotationCursor upserts the single rotation state row.
func (d *DB) SaveRotationCursor(ctx context.Context, cursor int) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO rotation_state (singleton, next_team_index)
		VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO UPDATE SET next_team_index = EXCLUDED.next_team_index
	`, cursor)
	if err != nil {
		return fmt.Errorf("failed to save rotation state: %w", err)
	}
	return nil
}
