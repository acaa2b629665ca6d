package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

// Cancel removes a manual reservation by id. Only manual reservations on
// today or a future date (KST) can be cancelled; auto records are owned by
// the rotation scheduler. No write happens when a precondition fails.
func Cancel(ctx context.Context, store ReservationStore, logger *zap.Logger, id string) error {
	logger.Debug("Cancelling reservation", zap.String("id", id))

	existing, err := store.GetReservations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reservations: %w", err)
	}

	var target *model.Reservation
	for i := range existing {
		if existing[i].ID == id {
			target = &existing[i]
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}
	if target.Kind != model.KindManual {
		return ErrNotCancellable
	}
	if target.Date.Before(model.DateOf(timeNow())) {
		return ErrNotCancellable
	}

	remaining := make([]model.Reservation, 0, len(existing)-1)
	for _, r := range existing {
		if r.ID != id {
			remaining = append(remaining, r)
		}
	}

	if err := store.ReplaceReservations(ctx, remaining); err != nil {
		return fmt.Errorf("failed to save reservations: %w", err)
	}

	logger.Info("Reservation cancelled",
		zap.String("id", id),
		zap.String("date", model.FormatDate(target.Date)),
		zap.String("team", string(target.Team)))

	return nil
}
