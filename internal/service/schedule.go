package service

import (
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/util"
)

// NextDate advances a date by one period unit. Monthly and yearly steps
// clamp the day-of-month instead of letting overflow spill into the next
// month.
func NextDate(base time.Time, period domain.RecurringPeriod) (time.Time, error) {
	switch period {
	case domain.PeriodDaily:
		return base.AddDate(0, 0, 1), nil
	case domain.PeriodWeekly:
		return base.AddDate(0, 0, 7), nil
	case domain.PeriodMonthly:
		return util.AddMonthClamped(base), nil
	case domain.PeriodYearly:
		return util.AddYearClamped(base), nil
	default:
		return time.Time{}, domain.ErrInvalidPeriod
	}
}

// NextOccurrenceDate computes the next occurrence of a rule strictly after
// lastPosted. A nil lastPosted (or one before the rule's start) yields the
// start date itself: the first occurrence. Returns ErrRuleExhausted when the
// computed date falls past the rule's end date.
func NextOccurrenceDate(rule *domain.RecurringRule, lastPosted *time.Time) (time.Time, error) {
	var next time.Time
	if lastPosted == nil || lastPosted.Before(rule.StartDate) {
		next = rule.StartDate
	} else {
		n, err := NextDate(*lastPosted, rule.Period)
		if err != nil {
			return time.Time{}, err
		}
		next = n
	}

	if rule.EndDate != nil && next.After(*rule.EndDate) {
		return time.Time{}, domain.ErrRuleExhausted
	}
	return next, nil
}
