// Package content holds the built-in question bank.
package content

import "aitekka-quiz/internal/domain"

// DefaultBankID identifies the built-in bank.
const DefaultBankID = "ai-2025"

// DefaultBank returns a fresh copy of the built-in "How much did you learn
// about AI in 2025?" quiz.
func DefaultBank() domain.Bank {
	return domain.Bank{
		ID:    DefaultBankID,
		Title: "How much did you learn about AI in 2025?",
		Questions: []domain.Question{
			{
				ID:   1,
				Text: "What does the \"LLM\" in LLM stand for?",
				Options: []domain.Option{
					{ID: "a", Text: "Large Language Model"},
					{ID: "b", Text: "Linear Logic Machine"},
					{ID: "c", Text: "Long Learning Memory"},
					{ID: "d", Text: "Low Latency Module"},
				},
				CorrectAnswerID: "a",
				Points:          1,
			},
			{
				ID:   2,
				Text: "What is a \"prompt\"?",
				Options: []domain.Option{
					{ID: "a", Text: "A hardware accelerator for training"},
					{ID: "b", Text: "The input text or instruction given to a model"},
					{ID: "c", Text: "A model's licence agreement"},
					{ID: "d", Text: "A benchmark score"},
				},
				CorrectAnswerID: "b",
				Points:          1,
			},
			{
				ID:   3,
				Text: "When a model confidently states something false, it is said to...",
				Options: []domain.Option{
					{ID: "a", Text: "Overfit"},
					{ID: "b", Text: "Quantize"},
					{ID: "c", Text: "Hallucinate"},
					{ID: "d", Text: "Tokenize"},
				},
				CorrectAnswerID: "c",
				Points:          1,
			},
			{
				ID:   4,
				Text: "What is Retrieval-Augmented Generation (RAG)?",
				Options: []domain.Option{
					{ID: "a", Text: "Retraining a model from scratch every night"},
					{ID: "b", Text: "Compressing model weights to 4 bits"},
					{ID: "c", Text: "Generating images from audio"},
					{ID: "d", Text: "Fetching relevant documents and adding them to the model's context"},
				},
				CorrectAnswerID: "d",
				Points:          2,
			},
			{
				ID:   5,
				Text: "What is a model's \"context window\"?",
				Options: []domain.Option{
					{ID: "a", Text: "The maximum amount of tokens it can consider at once"},
					{ID: "b", Text: "The UI panel where chats are shown"},
					{ID: "c", Text: "The period during which the model was trained"},
					{ID: "d", Text: "The list of allowed users"},
				},
				CorrectAnswerID: "a",
				Points:          2,
			},
			{
				ID:   6,
				Text: "What distinguishes an AI \"agent\" from a plain chatbot?",
				Options: []domain.Option{
					{ID: "a", Text: "It only answers in voice"},
					{ID: "b", Text: "It plans and takes actions with tools to reach a goal"},
					{ID: "c", Text: "It never uses a language model"},
					{ID: "d", Text: "It runs exclusively on mobile phones"},
				},
				CorrectAnswerID: "b",
				Points:          2,
			},
			{
				ID:   7,
				Text: "What is fine-tuning?",
				Options: []domain.Option{
					{ID: "a", Text: "Adjusting the temperature of a single request"},
					{ID: "b", Text: "Deleting unused layers of a network"},
					{ID: "c", Text: "Further training a pretrained model on task-specific data"},
					{ID: "d", Text: "Writing longer prompts"},
				},
				CorrectAnswerID: "c",
				Points:          3,
			},
			{
				ID:   8,
				Text: "What is the main purpose of the Model Context Protocol (MCP)?",
				Options: []domain.Option{
					{ID: "a", Text: "Encrypting model weights at rest"},
					{ID: "b", Text: "Measuring GPU temperature"},
					{ID: "c", Text: "Ranking models on public leaderboards"},
					{ID: "d", Text: "Standardizing how models connect to external tools and data"},
				},
				CorrectAnswerID: "d",
				Points:          3,
			},
			{
				ID:   9,
				Text: "Which practice best reduces risk when deploying AI in a company?",
				Options: []domain.Option{
					{ID: "a", Text: "Human review of high-impact outputs and clear usage policies"},
					{ID: "b", Text: "Giving the model unrestricted production access"},
					{ID: "c", Text: "Disabling all logging"},
					{ID: "d", Text: "Using the largest model available for every task"},
				},
				CorrectAnswerID: "a",
				Points:          3,
			},
		},
		Tiers: []domain.ResultTier{
			{
				MinScore:    0,
				MaxScore:    6,
				Title:       "AI Beginner",
				Description: "You're at the start of the journey. Keep experimenting with AI tools a little every day and the concepts will click.",
				Level:       domain.LevelBeginner,
			},
			{
				MinScore:    7,
				MaxScore:    13,
				Title:       "AI Practitioner",
				Description: "You use AI with confidence and understand how it works. The next step is building it into your team's workflows.",
				Level:       domain.LevelPractitioner,
			},
			{
				MinScore:    14,
				MaxScore:    18,
				Title:       "AI Strategist",
				Description: "Impressive! You understand both the technology and its risks. You're ready to lead AI adoption.",
				Level:       domain.LevelStrategist,
			},
		},
	}
}
