package schedule

import "github.com/jaeyoung-ko/roomrota/pkg/core/model"

// normalizeEnd widens the persisted 23:59 sentinel to 24:00 so that a
// reservation running to end of day leaves no one-minute gap.
func normalizeEnd(end int) int {
	if end == model.EndOfDaySentinel {
		return 24 * 60
	}
	return end
}

// Overlaps reports whether two half-open [start,end) spans on the same date
// intersect: max(s1,s2) < min(e1,e2).
func Overlaps(start1, end1, start2, end2 int) bool {
	end1 = normalizeEnd(end1)
	end2 = normalizeEnd(end2)

	lo := start1
	if start2 > lo {
		lo = start2
	}
	hi := end1
	if end2 < hi {
		hi = end2
	}
	return lo < hi
}
