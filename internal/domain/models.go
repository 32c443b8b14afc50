package domain

// State is the phase of a quiz play-through.
type State string

const (
	StateWelcome  State = "WELCOME"
	StatePlaying  State = "PLAYING"
	StateFinished State = "FINISHED"
)

// Level classifies a result tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelPractitioner Level = "practitioner"
	LevelStrategist   Level = "strategist"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelPractitioner, LevelStrategist:
		return true
	}
	return false
}

// Difficulty is derived from question points.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Option represents a possible answer for a question.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID              int      `json:"id" yaml:"id"`
	Text            string   `json:"text" yaml:"text"`
	Options         []Option `json:"options" yaml:"options"`
	CorrectAnswerID string   `json:"correctAnswerId" yaml:"correctAnswerId"`
	Points          int      `json:"points" yaml:"points"`
}

// Difficulty maps points to a badge: 1 is easy, 2 medium, anything above hard.
func (q Question) Difficulty() Difficulty {
	switch {
	case q.Points <= 1:
		return DifficultyEasy
	case q.Points == 2:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// HasOption reports whether optionID belongs to the question.
func (q Question) HasOption(optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Public strips the correct answer so the question can be shown to players.
func (q Question) Public() PublicQuestion {
	options := make([]Option, len(q.Options))
	copy(options, q.Options)
	return PublicQuestion{
		ID:         q.ID,
		Text:       q.Text,
		Options:    options,
		Points:     q.Points,
		Difficulty: q.Difficulty(),
	}
}

// PublicQuestion is a question without its answer key.
type PublicQuestion struct {
	ID         int        `json:"id"`
	Text       string     `json:"text"`
	Options    []Option   `json:"options"`
	Points     int        `json:"points"`
	Difficulty Difficulty `json:"difficulty"`
}

// ResultTier maps an inclusive score range to a qualitative result.
type ResultTier struct {
	MinScore    int    `json:"minScore" yaml:"minScore"`
	MaxScore    int    `json:"maxScore" yaml:"maxScore"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Level       Level  `json:"level" yaml:"level"`
}

// Contains reports whether score falls inside the tier range.
func (t ResultTier) Contains(score int) bool {
	return score >= t.MinScore && score <= t.MaxScore
}

// Bank is an ordered question set together with its result tiers.
type Bank struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	Questions []Question   `json:"questions" yaml:"questions"`
	Tiers     []ResultTier `json:"tiers" yaml:"tiers"`
}

// TotalQuestions is the number of questions in the bank.
func (b Bank) TotalQuestions() int {
	return len(b.Questions)
}

// MaxScore is the sum of all question points.
func (b Bank) MaxScore() int {
	total := 0
	for _, q := range b.Questions {
		total += q.Points
	}
	return total
}

// Summary describes a bank without exposing any answers.
func (b Bank) Summary() BankSummary {
	return BankSummary{
		ID:             b.ID,
		Title:          b.Title,
		TotalQuestions: b.TotalQuestions(),
		MaxScore:       b.MaxScore(),
	}
}

// BankSummary is the welcome-screen view of a bank.
type BankSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	TotalQuestions int    `json:"totalQuestions"`
	MaxScore       int    `json:"maxScore"`
}

// AnswerOutcome summarizes an accepted answer.
type AnswerOutcome struct {
	QuestionIndex    int    `json:"questionIndex"`
	QuestionID       int    `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
	CorrectAnswerID  string `json:"correctAnswerId"`
	Correct          bool   `json:"correct"`
	PointsAwarded    int    `json:"pointsAwarded"`
	Score            int    `json:"score"`
	Finished         bool   `json:"finished"`
}

// Snapshot is an immutable copy of the engine state.
type Snapshot struct {
	State          State           `json:"state"`
	QuestionIndex  int             `json:"questionIndex"`
	TotalQuestions int             `json:"totalQuestions"`
	Score          int             `json:"score"`
	MaxScore       int             `json:"maxScore"`
	Question       *PublicQuestion `json:"question,omitempty"`
	Result         *ResultTier     `json:"result,omitempty"`
}

// Reveal is the answered question shown with its highlighting before the
// session moves on.
type Reveal struct {
	QuestionIndex    int            `json:"questionIndex"`
	Question         PublicQuestion `json:"question"`
	SelectedOptionID string         `json:"selectedOptionId"`
	CorrectAnswerID  string         `json:"correctAnswerId"`
	Correct          bool           `json:"correct"`
	PointsAwarded    int            `json:"pointsAwarded"`
}

// SessionView is what presentation layers render.
type SessionView struct {
	SessionID string      `json:"sessionId"`
	Version   uint64      `json:"version"`
	Bank      BankSummary `json:"bank"`
	Snapshot  Snapshot    `json:"snapshot"`
	Reveal    *Reveal     `json:"reveal,omitempty"`
}
