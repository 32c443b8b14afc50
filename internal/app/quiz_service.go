package app

import (
	"context"
	"time"

	"aitekka-quiz/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionRepository abstracts where open sessions are registered (in-memory, Redis, etc).
type SessionRepository interface {
	Add(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// BankRepository loads validated question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// QuizService contains the quiz use cases.
type QuizService struct {
	sessions    SessionRepository
	banks       BankRepository
	revealDelay time.Duration
	log         logrus.FieldLogger
	newID       func() string
}

// ServiceOption customizes a QuizService.
type ServiceOption func(*QuizService)

// WithSessionRevealDelay sets the reveal delay applied to new sessions.
func WithSessionRevealDelay(d time.Duration) ServiceOption {
	return func(s *QuizService) { s.revealDelay = d }
}

// WithServiceLogger sets the logger passed down to sessions.
func WithServiceLogger(log logrus.FieldLogger) ServiceOption {
	return func(s *QuizService) { s.log = log }
}

func NewQuizService(store SessionRepository, banks BankRepository, opts ...ServiceOption) *QuizService {
	s := &QuizService{
		sessions:    store,
		banks:       banks,
		revealDelay: DefaultRevealDelay,
		log:         logrus.StandardLogger(),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a session in the WELCOME state for the given bank.
func (s *QuizService) Open(ctx context.Context, bankID string) (*Session, error) {
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return nil, err
	}

	session := NewSession(s.newID(), bank,
		WithRevealDelay(s.revealDelay),
		WithLogger(s.log),
	)
	s.sessions.Add(session)
	s.log.WithFields(logrus.Fields{
		"session_id": session.ID(),
		"bank_id":    bankID,
	}).Info("session opened")
	return session, nil
}

// Session looks up an open session.
func (s *QuizService) Session(_ context.Context, sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Close tears the session down, cancelling any pending reveal, and forgets it.
func (s *QuizService) Close(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
	s.log.WithField("session_id", sessionID).Info("session closed")
}

// livenessTracker is implemented by registries that expire idle sessions.
type livenessTracker interface {
	Touch(ctx context.Context, sessionID string) error
}

// Touch marks the session as active when the registry tracks liveness.
func (s *QuizService) Touch(ctx context.Context, sessionID string) {
	tracker, ok := s.sessions.(livenessTracker)
	if !ok {
		return
	}
	if err := tracker.Touch(ctx, sessionID); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("refresh session liveness")
	}
}

// Bank describes a bank for welcome screens.
func (s *QuizService) Bank(ctx context.Context, bankID string) (domain.BankSummary, error) {
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return domain.BankSummary{}, err
	}
	return bank.Summary(), nil
}
