package services

import (
	"context"
	"testing"
	"time"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

// mockStore implements the service store interfaces in memory.
type mockStore struct {
	reservations []model.Reservation
	cursor       int

	getErr        error
	replaceErr    error
	getCursorErr  error
	saveCursorErr error

	replaceCalls    int
	saveCursorCalls int
}

func (m *mockStore) GetReservations(ctx context.Context) ([]model.Reservation, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]model.Reservation, len(m.reservations))
	copy(out, m.reservations)
	return out, nil
}

func (m *mockStore) ReplaceReservations(ctx context.Context, reservations []model.Reservation) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaceCalls++
	m.reservations = make([]model.Reservation, len(reservations))
	copy(m.reservations, reservations)
	return nil
}

func (m *mockStore) GetRotationCursor(ctx context.Context) (int, error) {
	if m.getCursorErr != nil {
		return 0, m.getCursorErr
	}
	return m.cursor, nil
}

func (m *mockStore) SaveRotationCursor(ctx context.Context, cursor int) error {
	if m.saveCursorErr != nil {
		return m.saveCursorErr
	}
	m.saveCursorCalls++
	m.cursor = cursor
	return nil
}

// fixClock pins the service clock for the duration of a test.
func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

// kstDate builds a KST midnight date.
func kstDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, model.KST)
}
