package domain

import (
	"errors"
	"fmt"
)

// ComputeResult returns the first tier whose range contains score. When no
// tier matches it falls back to the first tier and reports matched=false.
func ComputeResult(tiers []ResultTier, score int) (tier ResultTier, matched bool) {
	for _, t := range tiers {
		if t.Contains(score) {
			return t, true
		}
	}
	if len(tiers) == 0 {
		return ResultTier{}, false
	}
	return tiers[0], false
}

// Validate checks the bank for integrity problems and reports all of them
// wrapped in ErrInvalidBank.
func (b Bank) Validate() error {
	var problems []error

	if len(b.Questions) == 0 {
		problems = append(problems, errors.New("bank has no questions"))
	}
	seenQuestions := make(map[int]struct{}, len(b.Questions))
	for i, q := range b.Questions {
		if _, dup := seenQuestions[q.ID]; dup {
			problems = append(problems, fmt.Errorf("question %d: duplicate id %d", i, q.ID))
		}
		seenQuestions[q.ID] = struct{}{}
		problems = append(problems, validateQuestion(i, q)...)
	}

	if len(b.Tiers) == 0 {
		problems = append(problems, errors.New("bank has no result tiers"))
	}
	for i, t := range b.Tiers {
		if t.MinScore > t.MaxScore {
			problems = append(problems, fmt.Errorf("tier %d: min score %d above max score %d", i, t.MinScore, t.MaxScore))
		}
		if !t.Level.Valid() {
			problems = append(problems, fmt.Errorf("tier %d: unknown level %q", i, t.Level))
		}
	}
	if len(b.Tiers) > 0 {
		if gaps := uncoveredScores(b.Tiers, b.MaxScore()); len(gaps) > 0 {
			problems = append(problems, fmt.Errorf("scores not covered by any tier: %v", gaps))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", ErrInvalidBank, b.ID, errors.Join(problems...))
}

func validateQuestion(i int, q Question) []error {
	var problems []error
	if len(q.Options) < 2 {
		problems = append(problems, fmt.Errorf("question %d: needs at least 2 options, has %d", i, len(q.Options)))
	}
	if q.Points <= 0 {
		problems = append(problems, fmt.Errorf("question %d: points must be positive, got %d", i, q.Points))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, dup := seen[opt.ID]; dup {
			problems = append(problems, fmt.Errorf("question %d: duplicate option id %q", i, opt.ID))
		}
		seen[opt.ID] = struct{}{}
	}
	if _, ok := seen[q.CorrectAnswerID]; !ok {
		problems = append(problems, fmt.Errorf("question %d: correct answer %q matches no option", i, q.CorrectAnswerID))
	}
	return problems
}

func uncoveredScores(tiers []ResultTier, maxScore int) []int {
	var gaps []int
	for score := 0; score <= maxScore; score++ {
		if _, ok := ComputeResult(tiers, score); !ok {
			gaps = append(gaps, score)
		}
	}
	return gaps
}
