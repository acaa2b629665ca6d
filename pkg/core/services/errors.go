package services

import "errors"

// Policy and conflict errors surfaced unchanged to the caller. Each mutating
// operation fails on the first violated gate; errors are never aggregated or
// retried.
var (
	// ErrPastDate rejects reservations for dates before today (KST).
	ErrPastDate = errors.New("reservation date is in the past")

	// ErrWindowViolation rejects times outside the day's manual window.
	ErrWindowViolation = errors.New("reservation is outside the allowed window")

	// ErrUnaligned rejects times not on whole-hour boundaries.
	ErrUnaligned = errors.New("reservation times must be on the hour")

	// ErrMinDuration rejects reservations shorter than one hour.
	ErrMinDuration = errors.New("reservation must be at least one hour")

	// ErrRoomTaken means the room already has an overlapping reservation.
	ErrRoomTaken = errors.New("room is already reserved in that window")

	// ErrTeamBusy means the team already holds an overlapping reservation.
	ErrTeamBusy = errors.New("team already has a reservation in that window")

	// ErrWeekdayDisallowed rejects auto-assignment on non-rotation days.
	ErrWeekdayDisallowed = errors.New("auto-assignment only runs on Wednesday or Sunday")

	// ErrAlreadyAssigned means an auto batch already occupies this date's slot.
	ErrAlreadyAssigned = errors.New("auto-assignment already exists for this date")

	// ErrNotFound means no reservation carries the requested id.
	ErrNotFound = errors.New("reservation not found")

	// ErrNotCancellable means the target is an auto record or a past date.
	ErrNotCancellable = errors.New("reservation cannot be cancelled")

	// ErrUnknownTeam rejects a team label outside the enumeration.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrUnknownRoom rejects a room label outside the enumeration.
	ErrUnknownRoom = errors.New("unknown room")
)
