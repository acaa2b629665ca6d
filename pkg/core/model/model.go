package model

import (
	"fmt"
	"time"
)

// KST is the reference timezone for every date and for "today". Reservation
// dates carry no offset of their own; they are calendar days in this zone.
var KST = time.FixedZone("KST", 9*60*60)

type Team string

type Room string

// Kind distinguishes user-created reservations from rotation batches. The
// wire values are the Korean labels stored in the reservation sheet.
type Kind string

const (
	KindManual Kind = "수동"
	KindAuto   Kind = "자동"
)

func (k Kind) IsValid() bool {
	return k == KindManual || k == KindAuto
}

// SeniorTeam is pinned to SeniorRoom on every auto-assignment and never
// enters rotation.
const SeniorTeam Team = "시니어조"

// SeniorRoom is reserved for SeniorTeam during auto-assignment.
const SeniorRoom Room = "대회의실"

// RotationTeams is the fixed total order that defines the rotation sequence.
var RotationTeams = []Team{
	"1조", "2조", "3조", "4조", "5조", "6조", "7조",
	"8조", "9조", "10조", "11조", "12조", "13조", "14조",
}

// ExcludedTeams may reserve rooms manually but never receive auto-assignments.
var ExcludedTeams = []Team{"15조", "16조"}

// RotationRooms is the fixed order of rooms used for rotation assignment.
var RotationRooms = []Room{
	"9F-1", "9F-2", "9F-3", "9F-4",
	"10F-1", "10F-2", "10F-3", "10F-4",
}

// AllTeams returns every team eligible to appear on a reservation.
func AllTeams() []Team {
	teams := make([]Team, 0, len(RotationTeams)+len(ExcludedTeams)+1)
	teams = append(teams, RotationTeams...)
	teams = append(teams, ExcludedTeams...)
	teams = append(teams, SeniorTeam)
	return teams
}

// AllRooms returns every reservable room.
func AllRooms() []Room {
	rooms := make([]Room, 0, len(RotationRooms)+1)
	rooms = append(rooms, RotationRooms...)
	rooms = append(rooms, SeniorRoom)
	return rooms
}

// IsKnownTeam reports whether t is one of the enumerated teams.
func IsKnownTeam(t Team) bool {
	for _, known := range AllTeams() {
		if t == known {
			return true
		}
	}
	return false
}

// IsKnownRoom reports whether r is one of the enumerated rooms.
func IsKnownRoom(r Room) bool {
	for _, known := range AllRooms() {
		if r == known {
			return true
		}
	}
	return false
}

// Reservation is a single room booking on one calendar date. Start and End
// are minutes from midnight; End is exclusive. The 23:59 end-of-day sentinel
// is stored as 1439 and widened to 1440 only by the overlap arithmetic.
type Reservation struct {
	ID    string
	Date  time.Time // midnight KST
	Start int
	End   int
	Team  Team
	Room  Room
	Kind  Kind
}

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * 60

	// EndOfDaySentinel is the persisted form of a reservation running to
	// midnight (the Wednesday auto window).
	EndOfDaySentinel = 23*60 + 59
)

// DateOf truncates t to its calendar date in KST.
func DateOf(t time.Time) time.Time {
	t = t.In(KST)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, KST)
}

// ParseDate parses a YYYY-MM-DD string as a KST calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, KST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a KST calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.In(KST).Format("2006-01-02")
}

// ParseClock parses an HH:MM wall-clock string into minutes from midnight.
// The whole string must match; trailing text in a hand-edited cell is an
// error, not a partial parse.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*minutesPerHour + t.Minute(), nil
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// HourAligned reports whether minutes falls on a whole-hour boundary.
func HourAligned(minutes int) bool {
	return minutes%minutesPerHour == 0
}
