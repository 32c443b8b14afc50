package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"aitekka-quiz/internal/app"
	"aitekka-quiz/internal/domain"
)

const maxAttempts = 3

// Player drives one session from line-oriented input.
type Player struct {
	session *app.Session
	in      *bufio.Reader
	out     io.Writer
}

func NewPlayer(session *app.Session, in io.Reader, out io.Writer) *Player {
	return &Player{session: session, in: bufio.NewReader(in), out: out}
}

// Run plays until the user declines another round or input ends.
func (p *Player) Run(ctx context.Context) error {
	updates, cancel := p.session.Subscribe()
	defer cancel()

	view := p.session.View()
	renderWelcome(p.out, view.Bank)
	fmt.Fprint(p.out, "Press Enter to start...")
	if _, err := p.readLine(); err != nil {
		return ignoreEOF(err)
	}
	if _, err := p.session.Start(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		view := p.session.View()
		switch view.Snapshot.State {
		case domain.StatePlaying:
			if err := p.playQuestion(ctx, view.Snapshot, updates); err != nil {
				return ignoreEOF(err)
			}
		case domain.StateFinished:
			renderResult(p.out, view.Snapshot)
			fmt.Fprint(p.out, "Play again? [y/N] ")
			line, err := p.readLine()
			if err != nil {
				return ignoreEOF(err)
			}
			if !strings.EqualFold(line, "y") {
				return nil
			}
			if _, err := p.session.Restart(); err != nil {
				return err
			}
		default:
			if _, err := p.session.Start(); err != nil {
				return err
			}
		}
	}
}

func (p *Player) playQuestion(ctx context.Context, snap domain.Snapshot, updates <-chan domain.SessionView) error {
	q := snap.Question
	renderQuestion(p.out, snap)

	choice, ok, err := p.readChoice(len(q.Options))
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out)
	if !ok {
		// Too many invalid inputs: show the question again.
		return nil
	}

	outcome, err := p.session.Answer(snap.QuestionIndex, q.Options[choice].ID)
	if err != nil {
		fmt.Fprintf(p.out, "Answer rejected: %v\n", err)
		return nil
	}
	renderOutcome(p.out, *q, outcome)
	return p.awaitSettled(ctx, updates)
}

// awaitSettled blocks until the reveal of the last answer has ended.
func (p *Player) awaitSettled(ctx context.Context, updates <-chan domain.SessionView) error {
	for p.session.View().Reveal != nil {
		select {
		case _, ok := <-updates:
			if !ok {
				return domain.ErrSessionClosed
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (p *Player) readChoice(optionCount int) (int, bool, error) {
	maxLetter := byte('A' + optionCount - 1)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprint(p.out, "Your answer: ")
		line, err := p.readLine()
		if err != nil {
			return -1, false, err
		}
		answer := strings.ToUpper(line)
		if len(answer) == 1 && answer[0] >= 'A' && answer[0] <= maxLetter {
			return int(answer[0] - 'A'), true, nil
		}
		if attempt < maxAttempts {
			fmt.Fprintf(p.out, "Invalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}
	return -1, false, nil
}

func (p *Player) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
