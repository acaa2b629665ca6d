package db

import (
	"context"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

// Store is the full storage port: the reservation log plus the rotation
// cursor. The sheets-backed DB and the Postgres store both implement it; it
// is the one polymorphic seam in the system.
type Store interface {
	GetReservations(ctx context.Context) ([]model.Reservation, error)
	ReplaceReservations(ctx context.Context, reservations []model.Reservation) error
	GetRotationCursor(ctx context.Context) (int, error)
	SaveRotationCursor(ctx context.Context, cursor int) error
	InvalidateCache()
}
