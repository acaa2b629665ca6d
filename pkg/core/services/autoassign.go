package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
	"github.com/jaeyoung-ko/roomrota/pkg/core/schedule"
)

// AutoAssignStore extends the reservation log with the single-row rotation
// cursor. The cursor is owned by this service and is never touched elsewhere.
type AutoAssignStore interface {
	ReservationStore
	GetRotationCursor(ctx context.Context) (int, error)
	SaveRotationCursor(ctx context.Context, cursor int) error
}

// Assignment is one team-to-room pairing produced by an auto-assignment run.
type Assignment struct {
	Team model.Team
	Room model.Room
}

// AutoAssignResult reports the batch written by AutoAssign.
type AutoAssignResult struct {
	Date        time.Time
	Window      schedule.Window
	Assignments []Assignment
	NextCursor  int
}

// AutoAssign writes one rotation batch for the given date: the senior team
// pinned to its room plus min(|teams|, |rooms|) rotation pairings starting at
// the persisted cursor. The cursor advances with the batch write so pairings
// progress uniformly across invocations. A second run against the same date
// and window is rejected rather than overwritten.
func AutoAssign(ctx context.Context, store AutoAssignStore, logger *zap.Logger, date time.Time, enforceWeekday bool) (*AutoAssignResult, error) {
	date = model.DateOf(date)

	logger.Debug("Running auto-assignment",
		zap.String("date", model.FormatDate(date)),
		zap.Bool("enforce_weekday", enforceWeekday))

	if enforceWeekday {
		wd := date.Weekday()
		if wd != time.Wednesday && wd != time.Sunday {
			return nil, ErrWeekdayDisallowed
		}
	}

	window := schedule.ProfileFor(date).Auto

	existing, err := store.GetReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	for _, r := range existing {
		if r.Kind == model.KindAuto && r.Date.Equal(date) && r.Start == window.Start && r.End == window.End {
			return nil, ErrAlreadyAssigned
		}
	}

	cursor, err := store.GetRotationCursor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rotation cursor: %w", err)
	}

	teamCount := len(model.RotationTeams)
	if teamCount > 0 {
		cursor = ((cursor % teamCount) + teamCount) % teamCount
	} else {
		cursor = 0
	}

	batchSize := teamCount
	if len(model.RotationRooms) < batchSize {
		batchSize = len(model.RotationRooms)
	}

	assignments := make([]Assignment, 0, batchSize+1)
	assignments = append(assignments, Assignment{Team: model.SeniorTeam, Room: model.SeniorRoom})
	for i := 0; i < batchSize; i++ {
		assignments = append(assignments, Assignment{
			Team: model.RotationTeams[(cursor+i)%teamCount],
			Room: model.RotationRooms[i],
		})
	}

	batch := make([]model.Reservation, 0, len(assignments))
	for _, a := range assignments {
		batch = append(batch, model.Reservation{
			ID:    newID(),
			Date:  date,
			Start: window.Start,
			End:   window.End,
			Team:  a.Team,
			Room:  a.Room,
			Kind:  model.KindAuto,
		})
	}

	if err := store.ReplaceReservations(ctx, append(existing, batch...)); err != nil {
		return nil, fmt.Errorf("failed to save reservations: %w", err)
	}

	nextCursor := 0
	if teamCount > 0 {
		nextCursor = (cursor + batchSize) % teamCount
	}
	if err := store.SaveRotationCursor(ctx, nextCursor); err != nil {
		return nil, fmt.Errorf("failed to save rotation cursor: %w", err)
	}

	logger.Info("Auto-assignment complete",
		zap.String("date", model.FormatDate(date)),
		zap.Int("assignments", len(assignments)),
		zap.Int("cursor", cursor),
		zap.Int("next_cursor", nextCursor))

	return &AutoAssignResult{
		Date:        date,
		Window:      window,
		Assignments: assignments,
		NextCursor:  nextCursor,
	}, nil
}
