package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/util"
)

func TestNextDate(t *testing.T) {
	tests := []struct {
		name   string
		base   time.Time
		period domain.RecurringPeriod
		want   time.Time
	}{
		{"daily", util.Date(2024, time.January, 9), domain.PeriodDaily, util.Date(2024, time.January, 10)},
		{"weekly", util.Date(2024, time.January, 8), domain.PeriodWeekly, util.Date(2024, time.January, 15)},
		{"monthly", util.Date(2024, time.March, 15), domain.PeriodMonthly, util.Date(2024, time.April, 15)},
		{"monthly clamps to leap feb", util.Date(2024, time.January, 31), domain.PeriodMonthly, util.Date(2024, time.February, 29)},
		{"monthly clamps to non-leap feb", util.Date(2023, time.January, 31), domain.PeriodMonthly, util.Date(2023, time.February, 28)},
		{"yearly", util.Date(2023, time.June, 1), domain.PeriodYearly, util.Date(2024, time.June, 1)},
		{"yearly clamps leap day", util.Date(2024, time.February, 29), domain.PeriodYearly, util.Date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDate(tt.base, tt.period)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextDate(%s, %s) = %s, want %s",
					util.FormatDate(tt.base), tt.period, util.FormatDate(got), util.FormatDate(tt.want))
			}
		})
	}
}

func TestNextDate_InvalidPeriod(t *testing.T) {
	_, err := NextDate(util.Date(2024, time.January, 1), domain.RecurringPeriod("FORTNIGHTLY"))
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestNextOccurrenceDate_FirstOccurrenceIsStartDate(t *testing.T) {
	rule := &domain.RecurringRule{
		Period:    domain.PeriodMonthly,
		StartDate: util.Date(2024, time.January, 31),
	}

	got, err := NextOccurrenceDate(rule, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(rule.StartDate) {
		t.Errorf("Expected first occurrence %s, got %s", util.FormatDate(rule.StartDate), util.FormatDate(got))
	}
}

func TestNextOccurrenceDate_LastPostedBeforeStart(t *testing.T) {
	rule := &domain.RecurringRule{
		Period:    domain.PeriodWeekly,
		StartDate: util.Date(2024, time.March, 1),
	}
	stale := util.Date(2024, time.February, 1)

	got, err := NextOccurrenceDate(rule, &stale)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(rule.StartDate) {
		t.Errorf("Expected %s, got %s", util.FormatDate(rule.StartDate), util.FormatDate(got))
	}
}

func TestNextOccurrenceDate_MonthlyClampsFromLastPosted(t *testing.T) {
	// Jan 31 rule: second occurrence lands on Feb 29 in a leap year.
	rule := &domain.RecurringRule{
		Period:    domain.PeriodMonthly,
		StartDate: util.Date(2024, time.January, 31),
	}
	last := rule.StartDate

	got, err := NextOccurrenceDate(rule, &last)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(util.Date(2024, time.February, 29)) {
		t.Errorf("Expected 2024-02-29, got %s", util.FormatDate(got))
	}
}

func TestNextOccurrenceDate_Exhausted(t *testing.T) {
	end := util.Date(2024, time.June, 30)
	rule := &domain.RecurringRule{
		Period:    domain.PeriodMonthly,
		StartDate: util.Date(2024, time.January, 1),
		EndDate:   &end,
	}
	last := util.Date(2024, time.June, 1)

	// Next would be 2024-07-01, past the end date.
	_, err := NextOccurrenceDate(rule, &last)
	if !errors.Is(err, domain.ErrRuleExhausted) {
		t.Errorf("Expected ErrRuleExhausted, got %v", err)
	}
}

func TestNextOccurrenceDate_EndDateInclusive(t *testing.T) {
	end := util.Date(2024, time.July, 1)
	rule := &domain.RecurringRule{
		Period:    domain.PeriodMonthly,
		StartDate: util.Date(2024, time.January, 1),
		EndDate:   &end,
	}
	last := util.Date(2024, time.June, 1)

	got, err := NextOccurrenceDate(rule, &last)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(end) {
		t.Errorf("Expected occurrence on the inclusive end date, got %s", util.FormatDate(got))
	}
}
