// Package audit provides the read-only corpus defect scan.
package audit

import (
	"context"
	"errors"
	"fmt"

	"content-normalizer/internal/domain"
	"content-normalizer/internal/normalize"
)

// maxSamples caps per-category example records kept for human triage.
const maxSamples = 10

// promptTruncate keeps sample prompts short enough for a terminal report.
const promptTruncate = 80

// QuestionStore lists corpus records. The auditor never writes.
type QuestionStore interface {
	ListQuestions(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error)
}

// TopicDirectory resolves a topic's assigned level.
type TopicDirectory interface {
	TopicLevel(ctx context.Context, topicID string) (string, error)
}

// Sample identifies a defective record for human review.
type Sample struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Track  string `json:"track,omitempty"`
}

// Category tallies one defect class with capped samples.
type Category struct {
	Count   int      `json:"count"`
	Samples []Sample `json:"samples,omitempty"`
}

func (c *Category) add(q domain.Question) {
	c.Count++
	if len(c.Samples) >= maxSamples {
		return
	}
	prompt := q.Prompt
	if len(prompt) > promptTruncate {
		prompt = prompt[:promptTruncate]
	}
	c.Samples = append(c.Samples, Sample{ID: q.ID, Prompt: prompt, Track: q.Track})
}

// Report is the aggregate audit output, printed as a single JSON object.
type Report struct {
	Scanned                    int      `json:"scanned"`
	InvalidAnswerJSON          Category `json:"invalidAnswerJson"`
	InvalidOptionsJSON         Category `json:"invalidOptionsJson"`
	AnswerNotInOptions         Category `json:"answerNotInOptions"`
	DuplicateOptionsExact      Category `json:"duplicateOptionsExact"`
	AnswerMismatchExplanation  Category `json:"answerMismatchExplanation"`
	TopicQuestionLevelMismatch Category `json:"topicQuestionLevelMismatch"`
}

// Auditor scans the corpus and categorizes structural defects without
// mutating anything.
type Auditor struct {
	questions QuestionStore
	topics    TopicDirectory
}

func New(questions QuestionStore, topics TopicDirectory) *Auditor {
	return &Auditor{questions: questions, topics: topics}
}

// Run scans all records passing the filter and tallies defects. Per-record
// defects are data, not errors; only store failures propagate.
func (a *Auditor) Run(ctx context.Context, f domain.QuestionFilter) (Report, error) {
	var rep Report

	records, err := a.questions.ListQuestions(ctx, f)
	if err != nil {
		return rep, fmt.Errorf("list questions: %w", err)
	}

	for _, q := range records {
		rep.Scanned++
		a.inspect(ctx, q, &rep)
	}
	return rep, nil
}

func (a *Auditor) inspect(ctx context.Context, q domain.Question, rep *Report) {
	opts, optErr := normalize.ParseOptions(q.Options)
	if optErr != nil {
		rep.InvalidOptionsJSON.add(q)
	}

	if q.Type.OptionBased() && optErr == nil {
		if len(normalize.DedupeExact(opts)) != len(opts) {
			rep.DuplicateOptionsExact.add(q)
		}

		res := normalize.Resolve(q.Type, opts, q.AnswerRaw)
		switch {
		case res.Resolved():
			cand := normalize.ExtractCandidate(q.Explanation)
			if rec := normalize.Reconcile(res, cand, opts); rec.Reason == normalize.ReasonExplanationContradiction {
				rep.AnswerMismatchExplanation.add(q)
			}
		case res.Reason == normalize.ReasonInvalidJSON:
			rep.InvalidAnswerJSON.add(q)
		default:
			rep.AnswerNotInOptions.add(q)
		}
	} else if _, err := normalize.ParseAnswer(q.AnswerRaw); err != nil {
		rep.InvalidAnswerJSON.add(q)
	}

	if q.TopicID != "" && q.UKLevelID != "" && a.topics != nil {
		level, err := a.topics.TopicLevel(ctx, q.TopicID)
		if errors.Is(err, domain.ErrTopicNotFound) {
			return
		}
		if err == nil && level != "" && level != q.UKLevelID {
			rep.TopicQuestionLevelMismatch.add(q)
		}
	}
}
