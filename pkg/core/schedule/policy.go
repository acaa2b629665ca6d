package schedule

import (
	"time"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

// Window is a half-open span of wall-clock minutes within one calendar date.
// End may carry the 23:59 end-of-day sentinel; Overlaps widens it to 24:00.
type Window struct {
	Start int
	End   int
}

// Contains reports whether the span [start,end) fits inside the window.
func (w Window) Contains(start, end int) bool {
	return start >= w.Start && end <= normalizeEnd(w.End)
}

// Profile holds the reservation windows that apply to one calendar date.
type Profile struct {
	Auto   Window // occupied by the auto-assignment batch
	Manual Window // accepted for user-initiated reservations
}

var (
	wednesdayProfile = Profile{
		Auto:   Window{Start: 21 * 60, End: model.EndOfDaySentinel},
		Manual: Window{Start: 16 * 60, End: 19 * 60},
	}
	defaultProfile = Profile{
		Auto:   Window{Start: 11 * 60, End: 13 * 60},
		Manual: Window{Start: 13 * 60, End: 17 * 60},
	}
)

// ProfileFor resolves the window profile for a date. Wednesday gets an
// evening auto window and a shifted manual window; every other day shares
// the default profile. Weekday is evaluated in KST. No holiday calendar.
func ProfileFor(date time.Time) Profile {
	if date.In(model.KST).Weekday() == time.Wednesday {
		return wednesdayProfile
	}
	return defaultProfile
}
