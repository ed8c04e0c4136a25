package cli

import (
	"encoding/json"

	"content-normalizer/internal/domain"
)

// sampleQuestions is a tiny corpus exercising the defect classes the tools
// exist for; swap in Postgres via config for real runs.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:          "q-clean",
			Type:        domain.TypeMCQ,
			Prompt:      "What is 7 x 8?",
			Options:     json.RawMessage(`["54","56","63","72"]`),
			AnswerRaw:   json.RawMessage(`1`),
			Explanation: "7 multiplied by 8 gives 56.",
			Published:   true,
			UKLevelID:   "E3",
			TopicID:     "topic-multiplication",
			Track:       "maths",
			Category:    "arithmetic",
		},
		{
			ID:          "q-literal-answer",
			Type:        domain.TypeMCQ,
			Prompt:      "Which word is a noun?",
			Options:     json.RawMessage(`["quickly","happiness","bright","run"]`),
			AnswerRaw:   json.RawMessage(`"happiness"`),
			Explanation: "A noun names a thing or feeling, so the answer is happiness.",
			Published:   true,
			UKLevelID:   "E2",
			TopicID:     "topic-word-classes",
			Track:       "english",
			Category:    "grammar",
		},
		{
			ID:          "q-duplicate-options",
			Type:        domain.TypeMCQ,
			Prompt:      "Pick the capital of France.",
			Options:     json.RawMessage(`["Paris","London","Paris ","Berlin"]`),
			AnswerRaw:   json.RawMessage(`0`),
			Explanation: "The capital of France is Paris.",
			Published:   true,
			UKLevelID:   "E1",
			TopicID:     "topic-geography",
			Track:       "general",
			Category:    "geography",
		},
		{
			ID:          "q-true-false",
			Type:        domain.TypeTrueFalse,
			Prompt:      "Water boils at 100 degrees Celsius at sea level.",
			Options:     json.RawMessage(`["True","False"]`),
			AnswerRaw:   json.RawMessage(`true`),
			Explanation: "At standard pressure the boiling point is 100 C.",
			Published:   true,
			UKLevelID:   "L1",
			TopicID:     "topic-states-of-matter",
			Track:       "science",
			Category:    "physics",
		},
		{
			ID:          "q-bad-answer",
			Type:        domain.TypeMCQ,
			Prompt:      "Which number is prime?",
			Options:     json.RawMessage(`["4","6","7","9"]`),
			AnswerRaw:   json.RawMessage(`{broken`),
			Explanation: "Only 7 has no divisors besides 1 and itself.",
			Published:   true,
			UKLevelID:   "L2",
			TopicID:     "topic-number-theory",
			Track:       "maths",
			Category:    "arithmetic",
		},
	}
}

func sampleTopics() map[string]domain.Topic {
	return map[string]domain.Topic{
		"topic-multiplication":   {ID: "topic-multiplication", Slug: "multiplication", UKLevelID: "E3"},
		"topic-word-classes":     {ID: "topic-word-classes", Slug: "word-classes", UKLevelID: "E2"},
		"topic-geography":        {ID: "topic-geography", Slug: "geography", UKLevelID: "E1"},
		"topic-states-of-matter": {ID: "topic-states-of-matter", Slug: "states-of-matter", UKLevelID: "L1"},
		"topic-number-theory":    {ID: "topic-number-theory", Slug: "number-theory", UKLevelID: "L2"},
	}
}
