package app

import (
	"sync"
	"time"

	"aitekka-quiz/internal/domain"
	"github.com/sirupsen/logrus"
)

// DefaultRevealDelay is how long an answered question stays highlighted
// before the next one is shown.
const DefaultRevealDelay = 1400 * time.Millisecond

// Timer is a scheduled transition that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithRevealDelay sets the reveal delay; zero or negative disables it.
func WithRevealDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.revealDelay = d }
}

// WithAfterFunc replaces the timer source, mainly for tests.
func WithAfterFunc(fn AfterFunc) SessionOption {
	return func(s *Session) { s.afterFunc = fn }
}

// WithLogger sets the session logger.
func WithLogger(log logrus.FieldLogger) SessionOption {
	return func(s *Session) { s.log = log }
}

// Session owns one Engine for a single player and publishes a view after
// every transition. The reveal that follows an answer is a cancellable
// scheduled transition; starting over or closing the session always cancels it.
type Session struct {
	id          string
	bank        domain.BankSummary
	revealDelay time.Duration
	afterFunc   AfterFunc
	log         logrus.FieldLogger

	mu          sync.Mutex
	engine      *Engine
	reveal      *domain.Reveal
	pending     Timer
	generation  uint64
	version     uint64
	closed      bool
	subscribers map[chan domain.SessionView]struct{}
}

// NewSession creates a session in the WELCOME state.
func NewSession(id string, bank domain.Bank, opts ...SessionOption) *Session {
	s := &Session{
		id:          id,
		bank:        bank.Summary(),
		revealDelay: DefaultRevealDelay,
		afterFunc:   stdAfterFunc,
		log:         logrus.StandardLogger(),
		subscribers: make(map[chan domain.SessionView]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session_id", id)
	s.engine = NewEngine(bank, s.log)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Start begins a play-through, discarding any pending reveal.
func (s *Session) Start() (domain.SessionView, error) {
	return s.transition(s.engine.Start)
}

// Restart has the same effect as Start.
func (s *Session) Restart() (domain.SessionView, error) {
	return s.transition(s.engine.Restart)
}

// Reset returns to the welcome screen.
func (s *Session) Reset() (domain.SessionView, error) {
	return s.transition(s.engine.Reset)
}

func (s *Session) transition(apply func()) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.SessionView{}, domain.ErrSessionClosed
	}
	s.cancelPendingLocked()
	apply()
	return s.broadcastLocked(), nil
}

// Answer submits optionID for the question at questionIndex. While the
// previous answer is still being revealed the call is rejected.
func (s *Session) Answer(questionIndex int, optionID string) (domain.AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.AnswerOutcome{}, domain.ErrSessionClosed
	}
	if s.reveal != nil {
		if questionIndex == s.reveal.QuestionIndex {
			return domain.AnswerOutcome{}, domain.ErrAlreadyAnswered
		}
		return domain.AnswerOutcome{}, domain.ErrRevealPending
	}

	outcome, err := s.engine.Answer(questionIndex, optionID)
	if err != nil {
		return domain.AnswerOutcome{}, err
	}

	s.log.WithFields(logrus.Fields{
		"question_index": outcome.QuestionIndex,
		"correct":        outcome.Correct,
		"awarded":        outcome.PointsAwarded,
		"score":          outcome.Score,
	}).Debug("answer accepted")

	if s.revealDelay > 0 {
		s.reveal = &domain.Reveal{
			QuestionIndex:    outcome.QuestionIndex,
			Question:         s.engine.bank.Questions[outcome.QuestionIndex].Public(),
			SelectedOptionID: outcome.SelectedOptionID,
			CorrectAnswerID:  outcome.CorrectAnswerID,
			Correct:          outcome.Correct,
			PointsAwarded:    outcome.PointsAwarded,
		}
		s.generation++
		gen := s.generation
		s.pending = s.afterFunc(s.revealDelay, func() { s.completeReveal(gen) })
	}
	s.broadcastLocked()
	return outcome, nil
}

// Skip ends a pending reveal immediately.
func (s *Session) Skip() (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.SessionView{}, domain.ErrSessionClosed
	}
	if s.reveal == nil {
		return s.viewLocked(), nil
	}
	s.cancelPendingLocked()
	return s.broadcastLocked(), nil
}

func (s *Session) completeReveal(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation || s.reveal == nil {
		return
	}
	s.reveal = nil
	s.pending = nil
	s.broadcastLocked()
}

// cancelPendingLocked stops the scheduled reveal transition. Bumping the
// generation turns a timer that already fired into a no-op.
func (s *Session) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.reveal = nil
	s.generation++
}

// View returns the current view.
func (s *Session) View() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Subscribe returns a channel that receives a view after every transition,
// starting with the current one. The caller must invoke the returned cancel
// function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.SessionView, func()) {
	ch := make(chan domain.SessionView, 8)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	ch <- s.viewLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Close cancels any pending transition and closes all subscriptions.
// Further operations return ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelPendingLocked()
	s.closed = true
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) broadcastLocked() domain.SessionView {
	s.version++
	view := s.viewLocked()
	for ch := range s.subscribers {
		select {
		case ch <- view:
		default:
			// Drop the oldest view so slow subscribers always see the latest.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
	return view
}

func (s *Session) viewLocked() domain.SessionView {
	view := domain.SessionView{
		SessionID: s.id,
		Version:   s.version,
		Bank:      s.bank,
		Snapshot:  s.engine.Snapshot(),
	}
	if s.reveal != nil {
		r := *s.reveal
		view.Reveal = &r
	}
	return view
}
