package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

// ListReservations returns the reservations for one calendar date, sorted by
// start time then room. The caller renders them; no filtering beyond the date.
func ListReservations(ctx context.Context, store ReservationStore, logger *zap.Logger, date time.Time) ([]model.Reservation, error) {
	date = model.DateOf(date)

	all, err := store.GetReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	reservations := make([]model.Reservation, 0)
	for _, r := range all {
		if r.Date.Equal(date) {
			reservations = append(reservations, r)
		}
	}

	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].Start != reservations[j].Start {
			return reservations[i].Start < reservations[j].Start
		}
		return reservations[i].Room < reservations[j].Room
	})

	logger.Debug("Listed reservations",
		zap.String("date", model.FormatDate(date)),
		zap.Int("count", len(reservations)))

	return reservations, nil
}
