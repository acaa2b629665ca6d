package db

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
	"github.com/jaeyoung-ko/roomrota/pkg/sheetssql"
)

// Tables returns the wire models the sheets schema is built from.
func Tables() []interface{} {
	return []interface{}{Reservation{}, RotationState{}}
}

// DB provides reservation storage over a SheetsSQL database.
type DB struct {
	ssql   *sheetssql.DB
	logger *zap.Logger
}

// NewDB creates a new sheets-backed store.
func NewDB(ssql *sheetssql.DB, logger *zap.Logger) *DB {
	return &DB{ssql: ssql, logger: logger}
}

var (
	reservationsTable  = Reservation{}.TableName()
	rotationStateTable = RotationState{}.TableName()
)

// GetReservations loads the full reservation log with date and time fields
// parsed. Rows with an unparseable date or time are dropped so one corrupt
// row cannot take the service down; drops are logged, never surfaced.
func (db *DB) GetReservations(ctx context.Context) ([]model.Reservation, error) {
	rows, err := sheetssql.GetTableAs[Reservation](db.ssql, reservationsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	reservations := make([]model.Reservation, 0, len(rows))
	for _, row := range rows {
		reservation, err := toModel(row)
		if err != nil {
			db.logger.Warn("Dropping malformed reservation row",
				zap.String("id", row.ID),
				zap.Error(err))
			continue
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

// ReplaceReservations overwrites the reservation table with the supplied log.
func (db *DB) ReplaceReservations(ctx context.Context, reservations []model.Reservation) error {
	rows := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		rows = append(rows, fromModel(r))
	}

	if err := sheetssql.ReplaceModels(db.ssql, reservationsTable, rows); err != nil {
		return fmt.Errorf("failed to replace reservations: %w", err)
	}
	return nil
}

// GetRotationCursor returns the persisted next_team_index. An empty table,
// a non-integer cell, or a negative value all read as 0 so a corrupt state
// row cannot stall the scheduler.
func (db *DB) GetRotationCursor(ctx context.Context) (int, error) {
	rows, err := db.ssql.ReadTable(rotationStateTable)
	if err != nil {
		return 0, fmt.Errorf("failed to get rotation state: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}

	cell, ok := rows[0][0].(string)
	if !ok {
		return 0, nil
	}
	cursor, err := strconv.Atoi(cell)
	if err != nil || cursor < 0 {
		db.logger.Warn("Resetting unreadable rotation cursor", zap.String("value", cell))
		return 0, nil
	}
	return cursor, nil
}

// SaveRotationCursor overwrites the rotation state with a single row.
func (db *DB) SaveRotationCursor(ctx context.Context, cursor int) error {
	rows := []RotationState{{NextTeamIndex: cursor}}
	if err := sheetssql.ReplaceModels(db.ssql, rotationStateTable, rows); err != nil {
		return fmt.Errorf("failed to save rotation state: %w", err)
	}
	return nil
}

// InvalidateCache drops every cached table read.
func (db *DB) InvalidateCache() {
	db.ssql.InvalidateCache()
}

// toModel parses a wire row into the domain form.
func toModel(row Reservation) (model.Reservation, error) {
	date, err := model.ParseDate(row.Date)
	if err != nil {
		return model.Reservation{}, err
	}
	start, err := model.ParseClock(row.Start)
	if err != nil {
		return model.Reservation{}, err
	}
	end, err := model.ParseClock(row.End)
	if err != nil {
		return model.Reservation{}, err
	}

	return model.Reservation{
		ID:    row.ID,
		Date:  date,
		Start: start,
		End:   end,
		Team:  model.Team(row.Team),
		Room:  model.Room(row.Room),
		Kind:  model.Kind(row.Kind),
	}, nil
}

// fromModel renders a domain reservation in its wire form. The end-of-day
// sentinel round-trips as the literal 23:59.
func fromModel(r model.Reservation) Reservation {
	return Reservation{
		Date:  model.FormatDate(r.Date),
		Start: model.FormatClock(r.Start),
		End:   model.FormatClock(r.End),
		Team:  string(r.Team),
		Room:  string(r.Room),
		Kind:  string(r.Kind),
		ID:    r.ID,
	}
}
