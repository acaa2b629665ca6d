package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
	"github.com/jaeyoung-ko/roomrota/pkg/core/schedule"
)

// ReservationStore defines the storage operations needed by the manual
// reservation and cancellation services. Mutation is whole-table overwrite;
// the load-check-save sequence within one call is the unit of consistency.
type ReservationStore interface {
	GetReservations(ctx context.Context) ([]model.Reservation, error)
	ReplaceReservations(ctx context.Context, reservations []model.Reservation) error
}

// ReserveRequest describes a manual reservation to place.
type ReserveRequest struct {
	Date  time.Time
	Start int // minutes from midnight
	End   int
	Team  model.Team
	Room  model.Room
}

// Reserve validates a manual reservation against the day's policy and the
// existing log, then appends it. Gates run in a fixed order and the first
// failure aborts the call. Returns the id of the new reservation.
func Reserve(ctx context.Context, store ReservationStore, logger *zap.Logger, req ReserveRequest) (string, error) {
	logger.Debug("Placing manual reservation",
		zap.String("date", model.FormatDate(req.Date)),
		zap.String("start", model.FormatClock(req.Start)),
		zap.String("end", model.FormatClock(req.End)),
		zap.String("team", string(req.Team)),
		zap.String("room", string(req.Room)))

	if !model.IsKnownTeam(req.Team) {
		return "", ErrUnknownTeam
	}
	if !model.IsKnownRoom(req.Room) {
		return "", ErrUnknownRoom
	}

	date := model.DateOf(req.Date)
	today := model.DateOf(timeNow())
	if date.Before(today) {
		return "", ErrPastDate
	}

	window := schedule.ProfileFor(date).Manual
	if req.End <= req.Start || !window.Contains(req.Start, req.End) {
		return "", ErrWindowViolation
	}
	// The last slot must still fit a full hour before the window closes.
	if req.Start > window.End-60 {
		return "", ErrWindowViolation
	}
	if req.End-req.Start < 60 {
		return "", ErrMinDuration
	}
	if !model.HourAligned(req.Start) || !model.HourAligned(req.End) {
		return "", ErrUnaligned
	}

	existing, err := store.GetReservations(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load reservations: %w", err)
	}

	for _, r := range existing {
		if !r.Date.Equal(date) || r.Room != req.Room {
			continue
		}
		if schedule.Overlaps(req.Start, req.End, r.Start, r.End) {
			return "", ErrRoomTaken
		}
	}
	for _, r := range existing {
		if !r.Date.Equal(date) || r.Team != req.Team {
			continue
		}
		if schedule.Overlaps(req.Start, req.End, r.Start, r.End) {
			return "", ErrTeamBusy
		}
	}

	reservation := model.Reservation{
		ID:    newID(),
		Date:  date,
		Start: req.Start,
		End:   req.End,
		Team:  req.Team,
		Room:  req.Room,
		Kind:  model.KindManual,
	}

	if err := store.ReplaceReservations(ctx, append(existing, reservation)); err != nil {
		return "", fmt.Errorf("failed to save reservations: %w", err)
	}

	logger.Info("Manual reservation created",
		zap.String("id", reservation.ID),
		zap.String("date", model.FormatDate(date)),
		zap.String("team", string(req.Team)),
		zap.String("room", string(req.Room)))

	return reservation.ID, nil
}
