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

// Sunday 2025-06-01 and the Sunday after it.
var (
	sunday     = kstDate(2025, time.June, 1)
	nextSunday = kstDate(2025, time.June, 8)
)

func TestAutoAssign_CursorWalk(t *testing.T) {
	store := &mockStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	teamCount := len(model.RotationTeams)  // 14
	roomCount := len(model.RotationRooms)  // 8
	require.Greater(t, teamCount, roomCount)

	result, err := AutoAssign(ctx, store, logger, sunday, true)
	require.NoError(t, err)

	// One senior pairing plus one per rotation room.
	require.Len(t, result.Assignments, roomCount+1)
	assert.Equal(t, Assignment{Team: model.SeniorTeam, Room: model.SeniorRoom}, result.Assignments[0])
	for i := 0; i < roomCount; i++ {
		assert.Equal(t, model.RotationTeams[i], result.Assignments[i+1].Team)
		assert.Equal(t, model.RotationRooms[i], result.Assignments[i+1].Room)
	}
	assert.Equal(t, roomCount, result.NextCursor)
	assert.Equal(t, roomCount, store.cursor)
	assert.Len(t, store.reservations, roomCount+1)

	// Next Sunday the rotation picks up where it left off and wraps.
	result, err = AutoAssign(ctx, store, logger, nextSunday, true)
	require.NoError(t, err)
	assert.Equal(t, model.RotationTeams[roomCount], result.Assignments[1].Team)
	assert.Equal(t, (2*roomCount)%teamCount, result.NextCursor) // 16 mod 14 = 2
	assert.Equal(t, 2, store.cursor)
}

func TestAutoAssign_WindowByWeekday(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	store := &mockStore{}
	result, err := AutoAssign(ctx, store, logger, sunday, true)
	require.NoError(t, err)
	assert.Equal(t, 11*60, result.Window.Start)
	assert.Equal(t, 13*60, result.Window.End)

	// Wednesday runs in the evening and persists the 23:59 sentinel.
	wednesday := kstDate(2025, time.June, 4)
	store = &mockStore{}
	result, err = AutoAssign(ctx, store, logger, wednesday, true)
	require.NoError(t, err)
	assert.Equal(t, 21*60, result.Window.Start)
	assert.Equal(t, model.EndOfDaySentinel, result.Window.End)
	for _, r := range store.reservations {
		assert.Equal(t, model.EndOfDaySentinel, r.End)
	}
}

func TestAutoAssign_WeekdayEnforcement(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	store := &mockStore{}
	_, err := AutoAssign(ctx, store, logger, monday, true)
	assert.ErrorIs(t, err, ErrWeekdayDisallowed)
	assert.Zero(t, store.replaceCalls)

	// Disabling enforcement allows any weekday with the default window.
	result, err := AutoAssign(ctx, store, logger, monday, false)
	require.NoError(t, err)
	assert.Equal(t, 11*60, result.Window.Start)
}

func TestAutoAssign_AlreadyAssigned(t *testing.T) {
	store := &mockStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := AutoAssign(ctx, store, logger, sunday, true)
	require.NoError(t, err)

	before := len(store.reservations)
	_, err = AutoAssign(ctx, store, logger, sunday, true)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	assert.Len(t, store.reservations, before)
	assert.Equal(t, 1, store.saveCursorCalls)
}

func TestAutoAssign_BatchRecords(t *testing.T) {
	store := &mockStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := AutoAssign(ctx, store, logger, sunday, true)
	require.NoError(t, err)

	seniorCount := 0
	seen := make(map[string]bool)
	for _, r := range store.reservations {
		assert.Equal(t, model.KindAuto, r.Kind)
		assert.True(t, r.Date.Equal(sunday))
		assert.Equal(t, result.Window.Start, r.Start)
		assert.Equal(t, result.Window.End, r.End)

		require.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true

		if r.Team == model.SeniorTeam {
			seniorCount++
			assert.Equal(t, model.SeniorRoom, r.Room)
		}
	}
	assert.Equal(t, 1, seniorCount)
}

func TestAutoAssign_CursorProgressionOverManyRuns(t *testing.T) {
	store := &mockStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	teamCount := len(model.RotationTeams)
	batchSize := len(model.RotationRooms)

	// Cursor after k runs is (k*N) mod T; every rotation team appears a
	// near-equal number of times.
	counts := make(map[model.Team]int)
	date := sunday
	for k := 1; k <= 7; k++ {
		result, err := AutoAssign(ctx, store, logger, date, true)
		require.NoError(t, err)
		assert.Equal(t, (k*batchSize)%teamCount, store.cursor)

		for _, a := range result.Assignments[1:] {
			counts[a.Team]++
		}
		date = date.AddDate(0, 0, 7)
	}

	// 7 runs * 8 slots = 56 = 4 full cycles of 14 teams.
	for _, team := range model.RotationTeams {
		assert.Equal(t, 4, counts[team], "team %s", team)
	}
}

// swapRotation pins the rotation enumerations for the duration of a test.
func swapRotation(t *testing.T, teams []model.Team, rooms []model.Room) {
	t.Helper()
	prevTeams, prevRooms := model.RotationTeams, model.RotationRooms
	model.RotationTeams, model.RotationRooms = teams, rooms
	t.Cleanup(func() { model.RotationTeams, model.RotationRooms = prevTeams, prevRooms })
}

func TestAutoAssign_EmptyRotation(t *testing.T) {
	swapRotation(t, nil, model.RotationRooms)
	store := &mockStore{cursor: 5}
	logger := zap.NewNop()

	result, err := AutoAssign(context.Background(), store, logger, sunday, true)
	require.NoError(t, err)

	// Only the pinned senior pairing; the stale cursor collapses to 0.
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, Assignment{Team: model.SeniorTeam, Room: model.SeniorRoom}, result.Assignments[0])
	assert.Equal(t, 0, result.NextCursor)
	assert.Equal(t, 0, store.cursor)
	assert.Len(t, store.reservations, 1)
}

func TestAutoAssign_FewerTeamsThanRooms(t *testing.T) {
	teams := []model.Team{"1조", "2조", "3조"}
	swapRotation(t, teams, model.RotationRooms)
	store := &mockStore{cursor: 2}
	logger := zap.NewNop()

	result, err := AutoAssign(context.Background(), store, logger, sunday, true)
	require.NoError(t, err)

	// The batch clamps to the team count and fills the first rooms in order.
	require.Len(t, result.Assignments, len(teams)+1)
	assert.Equal(t, model.Team("3조"), result.Assignments[1].Team)
	assert.Equal(t, model.RotationRooms[0], result.Assignments[1].Room)
	assert.Equal(t, model.Team("1조"), result.Assignments[2].Team)
	assert.Equal(t, model.RotationRooms[1], result.Assignments[2].Room)
	assert.Equal(t, model.Team("2조"), result.Assignments[3].Team)
	assert.Equal(t, model.RotationRooms[2], result.Assignments[3].Room)

	// (2 + 3) mod 3 = 2: a full cycle returns the cursor to where it began.
	assert.Equal(t, 2, result.NextCursor)
	assert.Equal(t, 2, store.cursor)
}

func TestAutoAssign_CursorNormalized(t *testing.T) {
	// An out-of-range persisted cursor is brought back into [0, T).
	store := &mockStore{cursor: len(model.RotationTeams) + 1}
	logger := zap.NewNop()

	result, err := AutoAssign(context.Background(), store, logger, sunday, true)
	require.NoError(t, err)
	assert.Equal(t, model.RotationTeams[1], result.Assignments[1].Team)
}

func TestAutoAssign_StorageErrorsSurface(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	store := &mockStore{getErr: assert.AnError}
	_, err := AutoAssign(ctx, store, logger, sunday, true)
	assert.ErrorIs(t, err, assert.AnError)

	store = &mockStore{getCursorErr: assert.AnError}
	_, err = AutoAssign(ctx, store, logger, sunday, true)
	assert.ErrorIs(t, err, assert.AnError)
}
