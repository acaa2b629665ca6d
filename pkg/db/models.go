package db

// Reservation is the wire form of a reservation row. All fields are strings
// on the sheet; dates are YYYY-MM-DD, times HH:MM, kind one of "자동"/"수동".
// Field order fixes the column order.
type Reservation struct {
	Date  string `sheet:"date" sheettype:"date"`
	Start string `sheet:"start" sheettype:"time"`
	End   string `sheet:"end" sheettype:"time"`
	Team  string `sheet:"team" sheettype:"text"`
	Room  string `sheet:"room" sheettype:"text"`
	Kind  string `sheet:"kind" sheettype:"text"`
	ID    string `sheet:"id" sheettype:"uuid"`
}

// TableName pins the sheet name to the plural form used by the schema.
func (Reservation) TableName() string { return "reservations" }

// RotationState is the single-row table holding the rotation cursor.
type RotationState struct {
	NextTeamIndex int `sheet:"next_team_index" sheettype:"int"`
}

func (RotationState) TableName() string { return "rotation_state" }
