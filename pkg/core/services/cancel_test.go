package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

func TestCancel_RoundTrip(t *testing.T) {
	fixClock(t, monday)
	store := &mockStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	id, err := Reserve(ctx, store, logger, ReserveRequest{
		Date: monday, Start: 14 * 60, End: 16 * 60, Team: "1조", Room: "9F-1",
	})
	require.NoError(t, err)

	// Cancelling the fresh reservation restores the prior (empty) log.
	require.NoError(t, Cancel(ctx, store, logger, id))
	assert.Empty(t, store.reservations)

	// Second cancel with the same id finds nothing.
	err = Cancel(ctx, store, logger, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_OnlyRemovesTarget(t *testing.T) {
	fixClock(t, monday)
	store := &mockStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	first, err := Reserve(ctx, store, logger, ReserveRequest{
		Date: monday, Start: 13 * 60, End: 14 * 60, Team: "1조", Room: "9F-1",
	})
	require.NoError(t, err)
	second, err := Reserve(ctx, store, logger, ReserveRequest{
		Date: monday, Start: 14 * 60, End: 15 * 60, Team: "2조", Room: "9F-2",
	})
	require.NoError(t, err)

	require.NoError(t, Cancel(ctx, store, logger, first))
	require.Len(t, store.reservations, 1)
	assert.Equal(t, second, store.reservations[0].ID)
}

func TestCancel_AutoRecordRejected(t *testing.T) {
	fixClock(t, monday)
	store := &mockStore{
		reservations: []model.Reservation{{
			ID:    "auto-1",
			Date:  monday,
			Start: 11 * 60,
			End:   13 * 60,
			Team:  "1조",
			Room:  "9F-1",
			Kind:  model.KindAuto,
		}},
	}

	err := Cancel(context.Background(), store, zap.NewNop(), "auto-1")
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Len(t, store.reservations, 1)
}

func TestCancel_PastDateRejected(t *testing.T) {
	fixClock(t, monday)
	store := &mockStore{
		reservations: []model.Reservation{{
			ID:    "old-1",
			Date:  kstDate(2025, time.May, 30),
			Start: 14 * 60,
			End:   15 * 60,
			Team:  "1조",
			Room:  "9F-1",
			Kind:  model.KindManual,
		}},
	}

	err := Cancel(context.Background(), store, zap.NewNop(), "old-1")
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Zero(t, store.replaceCalls)
}
