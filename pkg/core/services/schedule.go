package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
)

// DefaultAutoAssignRule matches the weekdays the scheduler accepts.
const DefaultAutoAssignRule = "FREQ=WEEKLY;BYDAY=WE,SU"

// UpcomingAutoDates expands the auto-assignment recurrence rule from today
// (KST) and returns the next count dates a rotation batch would run on.
// Today itself is included.
func UpcomingAutoDates(logger *zap.Logger, ruleStr string, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	if ruleStr == "" {
		ruleStr = DefaultAutoAssignRule
	}

	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid auto-assign rule %q: %w", ruleStr, err)
	}

	today := model.DateOf(timeNow())
	rule.DTStart(today)

	dates := make([]time.Time, 0, count)
	next := rule.After(today, true)
	for !next.IsZero() && len(dates) < count {
		dates = append(dates, model.DateOf(next))
		next = rule.After(next, false)
	}

	logger.Debug("Expanded auto-assign rule",
		zap.String("rule", ruleStr),
		zap.Int("count", len(dates)))

	return dates, nil
}
