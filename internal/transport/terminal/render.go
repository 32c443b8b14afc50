// Package terminal plays a quiz session on a text terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"aitekka-quiz/internal/domain"
)

var difficultyLabels = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "Easy",
	domain.DifficultyMedium: "Medium",
	domain.DifficultyHard:   "Hard",
}

func renderWelcome(out io.Writer, bank domain.BankSummary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, bank.Title)
	fmt.Fprintln(out, strings.Repeat("=", len(bank.Title)))
	fmt.Fprintf(out, "%d questions, %d points\n\n", bank.TotalQuestions, bank.MaxScore)
}

func renderQuestion(out io.Writer, snap domain.Snapshot) {
	q := snap.Question
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Question %d / %d  [%s, %s]\n\n", snap.QuestionIndex+1, snap.TotalQuestions, difficultyLabels[q.Difficulty], pointsLabel(q.Points))
	fmt.Fprintln(out, q.Text)
	fmt.Fprintln(out)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "%c. %s\n", optionLetter(i), opt.Text)
	}
	fmt.Fprintln(out)
}

func renderOutcome(out io.Writer, q domain.PublicQuestion, outcome domain.AnswerOutcome) {
	if outcome.Correct {
		fmt.Fprintf(out, "Correct! +%s\n", pointsLabel(outcome.PointsAwarded))
		return
	}
	for i, opt := range q.Options {
		if opt.ID == outcome.CorrectAnswerID {
			fmt.Fprintf(out, "Wrong. Correct answer was %c. %s\n", optionLetter(i), opt.Text)
			return
		}
	}
	fmt.Fprintln(out, "Wrong.")
}

func renderResult(out io.Writer, snap domain.Snapshot) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Your score: %d/%d\n\n", snap.Score, snap.MaxScore)
	if snap.Result != nil {
		fmt.Fprintln(out, snap.Result.Title)
		fmt.Fprintln(out, snap.Result.Description)
		fmt.Fprintln(out)
	}
}

func pointsLabel(points int) string {
	if points == 1 {
		return "1 point"
	}
	return fmt.Sprintf("%d points", points)
}

func optionLetter(i int) rune {
	return rune('A' + i)
}
