package app_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"aitekka-quiz/internal/app"
	"aitekka-quiz/internal/domain"
)

func TestSessionRevealThenAdvance(t *testing.T) {
	clock := &manualClock{}
	session := newTestSession(clock, time.Second)

	if _, err := session.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	outcome, err := session.Answer(0, "a")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !outcome.Correct || outcome.PointsAwarded != 1 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	view := session.View()
	if view.Reveal == nil || view.Reveal.QuestionIndex != 0 || view.Reveal.CorrectAnswerID != "a" {
		t.Fatalf("expected reveal for question 0, got %+v", view.Reveal)
	}
	if clock.delay() != time.Second {
		t.Fatalf("expected reveal scheduled after 1s, got %s", clock.delay())
	}

	if _, err := session.Answer(1, "b"); !errors.Is(err, domain.ErrRevealPending) {
		t.Fatalf("expected ErrRevealPending, got %v", err)
	}
	if _, err := session.Answer(0, "a"); !errors.Is(err, domain.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}

	clock.fire()
	view = session.View()
	if view.Reveal != nil {
		t.Fatalf("expected reveal cleared, got %+v", view.Reveal)
	}
	if view.Snapshot.QuestionIndex != 1 || view.Snapshot.Score != 1 {
		t.Fatalf("unexpected snapshot %+v", view.Snapshot)
	}
	if _, err := session.Answer(1, "b"); err != nil {
		t.Fatalf("answer after reveal: %v", err)
	}
}

func TestSessionRestartCancelsPendingReveal(t *testing.T) {
	clock := &manualClock{}
	session := newTestSession(clock, time.Second)

	_, _ = session.Start()
	if _, err := session.Answer(0, "a"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	view, err := session.Restart()
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if view.Reveal != nil || view.Snapshot.Score != 0 || view.Snapshot.QuestionIndex != 0 {
		t.Fatalf("restart did not reset: %+v", view)
	}
	if !clock.allStopped() {
		t.Fatalf("expected pending reveal timer to be stopped")
	}

	// A timer that fired anyway must not touch the new play-through.
	if _, err := session.Answer(0, "x"); err != nil {
		t.Fatalf("answer after restart: %v", err)
	}
	before := session.View()
	clock.fireStale(0)
	after := session.View()
	if after.Reveal == nil || after.Version != before.Version {
		t.Fatalf("stale transition mutated session: before=%+v after=%+v", before, after)
	}
}

func TestSessionCloseCancelsAndClosesSubscribers(t *testing.T) {
	clock := &manualClock{}
	session := newTestSession(clock, time.Second)

	updates, cancel := session.Subscribe()
	defer cancel()

	_, _ = session.Start()
	_, _ = session.Answer(0, "a")
	session.Close()

	if !clock.allStopped() {
		t.Fatalf("expected timers stopped on close")
	}
	clock.fireStale(0)

	for range updates {
	}
	if !session.Closed() {
		t.Fatalf("expected session closed")
	}
	if _, err := session.Start(); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := session.Answer(1, "b"); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSessionSubscribeReceivesViews(t *testing.T) {
	clock := &manualClock{}
	session := newTestSession(clock, time.Second)

	updates, cancel := session.Subscribe()
	defer cancel()

	initial := <-updates
	if initial.Snapshot.State != domain.StateWelcome {
		t.Fatalf("expected initial WELCOME view, got %s", initial.Snapshot.State)
	}

	_, _ = session.Start()
	started := <-updates
	if started.Snapshot.State != domain.StatePlaying || started.Version <= initial.Version {
		t.Fatalf("unexpected view after start: %+v", started)
	}

	_, _ = session.Answer(0, "a")
	revealed := <-updates
	if revealed.Reveal == nil {
		t.Fatalf("expected reveal view")
	}

	clock.fire()
	advanced := <-updates
	if advanced.Reveal != nil || advanced.Snapshot.QuestionIndex != 1 {
		t.Fatalf("expected advanced view, got %+v", advanced)
	}
}

func TestSessionSkipEndsReveal(t *testing.T) {
	clock := &manualClock{}
	session := newTestSession(clock, time.Second)

	_, _ = session.Start()
	_, _ = session.Answer(0, "a")
	view, err := session.Skip()
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if view.Reveal != nil {
		t.Fatalf("expected reveal cleared")
	}
	if !clock.allStopped() {
		t.Fatalf("expected timer stopped by skip")
	}
	if _, err := session.Answer(1, "b"); err != nil {
		t.Fatalf("answer after skip: %v", err)
	}
}

func TestSessionWithoutRevealDelayAdvancesImmediately(t *testing.T) {
	clock := &manualClock{}
	session := newTestSession(clock, 0)

	_, _ = session.Start()
	for i, opt := range []string{"a", "a", "c"} {
		if _, err := session.Answer(i, opt); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	view := session.View()
	if view.Reveal != nil || view.Snapshot.State != domain.StateFinished || view.Snapshot.Score != 4 {
		t.Fatalf("unexpected final view %+v", view)
	}
	if view.Snapshot.Result == nil || view.Snapshot.Result.Level != domain.LevelPractitioner {
		t.Fatalf("expected practitioner result, got %+v", view.Snapshot.Result)
	}
	if clock.count() != 0 {
		t.Fatalf("expected no timers, got %d", clock.count())
	}
}

func TestSessionRevealUsesRealTimer(t *testing.T) {
	session := app.NewSession("s-real", sampleBank(), app.WithRevealDelay(10*time.Millisecond), app.WithLogger(quietLogger()))
	defer session.Close()

	updates, cancel := session.Subscribe()
	defer cancel()

	_, _ = session.Start()
	_, _ = session.Answer(0, "a")

	deadline := time.After(2 * time.Second)
	for {
		select {
		case view := <-updates:
			if view.Reveal == nil && view.Snapshot.QuestionIndex == 1 {
				return
			}
		case <-deadline:
			t.Fatalf("reveal never completed")
		}
	}
}

func newTestSession(clock *manualClock, delay time.Duration) *app.Session {
	return app.NewSession("s-1", sampleBank(),
		app.WithRevealDelay(delay),
		app.WithAfterFunc(clock.AfterFunc),
		app.WithLogger(quietLogger()),
	)
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) app.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, timer)
	return timer
}

// fire runs every timer that has not been stopped.
func (c *manualClock) fire() {
	c.mu.Lock()
	timers := append([]*manualTimer(nil), c.timers...)
	c.mu.Unlock()
	for _, timer := range timers {
		if timer.Stop() {
			timer.f()
		}
	}
}

// fireStale runs the i-th timer even if it was stopped, as a timer that
// raced with Stop would.
func (c *manualClock) fireStale(i int) {
	c.mu.Lock()
	timer := c.timers[i]
	c.mu.Unlock()
	timer.f()
}

func (c *manualClock) allStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, timer := range c.timers {
		timer.mu.Lock()
		stopped := timer.stopped
		timer.mu.Unlock()
		if !stopped {
			return false
		}
	}
	return true
}

func (c *manualClock) delay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return 0
	}
	return c.timers[len(c.timers)-1].d
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
