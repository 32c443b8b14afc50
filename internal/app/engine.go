package app

import (
	"aitekka-quiz/internal/domain"
	"github.com/sirupsen/logrus"
)

// Engine is the quiz state machine for one play-through. It is not safe for
// concurrent use; Session serializes access to it.
type Engine struct {
	bank     domain.Bank
	maxScore int
	log      logrus.FieldLogger

	state    domain.State
	index    int
	score    int
	answered []bool
}

// NewEngine returns an engine in the WELCOME state. The bank is expected to
// have passed Validate.
func NewEngine(bank domain.Bank, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		bank:     bank,
		maxScore: bank.MaxScore(),
		log:      log.WithField("bank_id", bank.ID),
		state:    domain.StateWelcome,
		answered: make([]bool, len(bank.Questions)),
	}
}

// Start begins a new play-through from any state.
func (e *Engine) Start() {
	e.reset(domain.StatePlaying)
}

// Restart has the same effect as Start.
func (e *Engine) Restart() {
	e.Start()
}

// Reset returns to the welcome screen.
func (e *Engine) Reset() {
	e.reset(domain.StateWelcome)
}

func (e *Engine) reset(state domain.State) {
	if state == domain.StatePlaying && len(e.bank.Questions) == 0 {
		state = domain.StateFinished
	}
	e.state = state
	e.index = 0
	e.score = 0
	for i := range e.answered {
		e.answered[i] = false
	}
}

// Answer scores optionID for the question at questionIndex. Only the current
// question can be answered and only once; rejected calls leave the state
// untouched.
func (e *Engine) Answer(questionIndex int, optionID string) (domain.AnswerOutcome, error) {
	if e.state != domain.StatePlaying {
		return domain.AnswerOutcome{}, domain.ErrNotPlaying
	}
	if questionIndex >= 0 && questionIndex < len(e.answered) && e.answered[questionIndex] {
		return domain.AnswerOutcome{}, domain.ErrAlreadyAnswered
	}
	if questionIndex < e.index {
		return domain.AnswerOutcome{}, domain.ErrAlreadyAnswered
	}
	if questionIndex != e.index {
		return domain.AnswerOutcome{}, domain.ErrQuestionOutOfOrder
	}

	question := e.bank.Questions[e.index]
	if !question.HasOption(optionID) {
		return domain.AnswerOutcome{}, domain.ErrOptionNotFound
	}

	correct := optionID == question.CorrectAnswerID
	awarded := 0
	if correct {
		awarded = question.Points
	}
	e.score += awarded
	e.answered[e.index] = true

	finished := e.index == len(e.bank.Questions)-1
	if finished {
		e.state = domain.StateFinished
	} else {
		e.index++
	}

	return domain.AnswerOutcome{
		QuestionIndex:    questionIndex,
		QuestionID:       question.ID,
		SelectedOptionID: optionID,
		CorrectAnswerID:  question.CorrectAnswerID,
		Correct:          correct,
		PointsAwarded:    awarded,
		Score:            e.score,
		Finished:         finished,
	}, nil
}

// State returns the current phase.
func (e *Engine) State() domain.State {
	return e.state
}

// Result resolves the tier for the current score. It is only meaningful once
// the engine is FINISHED.
func (e *Engine) Result() domain.ResultTier {
	tier, ok := domain.ComputeResult(e.bank.Tiers, e.score)
	if !ok {
		e.log.WithFields(logrus.Fields{
			"score":     e.score,
			"max_score": e.maxScore,
		}).Warn("no result tier covers score, falling back to first tier")
	}
	return tier
}

// Snapshot returns an immutable copy of the engine state.
func (e *Engine) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		State:          e.state,
		QuestionIndex:  e.index,
		TotalQuestions: len(e.bank.Questions),
		Score:          e.score,
		MaxScore:       e.maxScore,
	}
	switch e.state {
	case domain.StatePlaying:
		q := e.bank.Questions[e.index].Public()
		snap.Question = &q
	case domain.StateFinished:
		tier := e.Result()
		snap.Result = &tier
	}
	return snap
}
