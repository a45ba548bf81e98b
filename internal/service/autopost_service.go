package service

import (
	"errors"
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// AutoPostService backfills due occurrences for auto-post recurring rules.
type AutoPostService struct {
	ruleRepo  domain.RecurringRuleRepository
	recurring *RecurringService
}

// NewAutoPostService creates a new AutoPostService
func NewAutoPostService(ruleRepo domain.RecurringRuleRepository, recurring *RecurringService) *AutoPostService {
	return &AutoPostService{
		ruleRepo:  ruleRepo,
		recurring: recurring,
	}
}

// Sweep posts every due-but-unposted occurrence up to today for all rules
// flagged auto-post. A failing rule is logged and skipped; the sweep keeps
// going. Returns the number of transactions created.
func (s *AutoPostService) Sweep(today time.Time) (int, error) {
	rules, err := s.ruleRepo.ListAutoPost()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, rule := range rules {
		n, err := s.sweepRule(rule.ID, today)
		created += n
		if err != nil {
			log.Warn().Err(err).Int64("rule_id", rule.ID).Msg("Auto-post skipped for rule")
		}
	}
	return created, nil
}

func (s *AutoPostService) sweepRule(ruleID int64, today time.Time) (int, error) {
	created := 0
	for {
		_, err := s.recurring.GenerateNext(ruleID, today, false)
		if errors.Is(err, domain.ErrRuleExhausted) {
			return created, nil
		}
		if err != nil {
			return created, err
		}
		created++
	}
}
