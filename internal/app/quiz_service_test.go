package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"aitekka-quiz/internal/app"
	"aitekka-quiz/internal/domain"
	"aitekka-quiz/internal/infra/memory"
)

func TestOpenPlayAndClose(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	service := newTestService(store)

	session, err := service.Open(ctx, "bank-1")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if session.ID() == "" {
		t.Fatalf("expected generated session id")
	}
	if view := session.View(); view.Snapshot.State != domain.StateWelcome || view.Bank.MaxScore != 6 {
		t.Fatalf("unexpected initial view %+v", view)
	}

	found, err := service.Session(ctx, session.ID())
	if err != nil || found != session {
		t.Fatalf("expected to find the session, got %v", err)
	}

	_, _ = session.Start()
	for i, opt := range []string{"a", "b", "c"} {
		if _, err := session.Answer(i, opt); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	if view := session.View(); view.Snapshot.Result == nil || view.Snapshot.Result.Title != "Strategist" {
		t.Fatalf("expected Strategist, got %+v", view.Snapshot.Result)
	}

	service.Close(ctx, session.ID())
	if !session.Closed() {
		t.Fatalf("expected session closed")
	}
	if _, err := service.Session(ctx, session.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestOpenUnknownBank(t *testing.T) {
	service := newTestService(memory.NewSessionStore())
	if _, err := service.Open(context.Background(), "missing"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestOpenGivesIndependentSessions(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewSessionStore())

	first, _ := service.Open(ctx, "bank-1")
	second, _ := service.Open(ctx, "bank-1")
	if first.ID() == second.ID() {
		t.Fatalf("expected distinct ids")
	}

	_, _ = first.Start()
	_, _ = first.Answer(0, "a")
	if second.View().Snapshot.Score != 0 {
		t.Fatalf("sessions must not share score")
	}
}

func TestBankSummary(t *testing.T) {
	summary, err := newTestService(memory.NewSessionStore()).Bank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	if summary.TotalQuestions != 3 || summary.MaxScore != 6 || summary.Title != "Sample" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestCloseUnknownSessionIsNoop(t *testing.T) {
	service := newTestService(memory.NewSessionStore())
	service.Close(context.Background(), "nope")
	service.Touch(context.Background(), "nope")
}

func newTestService(store app.SessionRepository) *app.QuizService {
	banks := memory.NewBankRepository(memory.NewStaticBankLoader(sampleBank()), 5*time.Minute)
	return app.NewQuizService(store, banks,
		app.WithSessionRevealDelay(0),
		app.WithServiceLogger(quietLogger()),
	)
}
