package audit_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"content-normalizer/internal/audit"
	"content-normalizer/internal/domain"
	"content-normalizer/internal/infra/memory"
)

func TestAuditCategorizesDefects(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuestionStore(defectCorpus())
	auditor := audit.New(store, memory.NewStaticTopicDirectory(nil))

	rep, err := auditor.Run(ctx, domain.QuestionFilter{})
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	if rep.Scanned != 20 {
		t.Fatalf("expected 20 scanned, got %d", rep.Scanned)
	}
	if rep.DuplicateOptionsExact.Count != 3 {
		t.Fatalf("expected 3 duplicate-option records, got %d", rep.DuplicateOptionsExact.Count)
	}
	if rep.AnswerMismatchExplanation.Count != 2 {
		t.Fatalf("expected 2 contradictions, got %d", rep.AnswerMismatchExplanation.Count)
	}
	if rep.InvalidAnswerJSON.Count != 1 {
		t.Fatalf("expected 1 invalid answer, got %d", rep.InvalidAnswerJSON.Count)
	}
	if rep.InvalidOptionsJSON.Count != 0 || rep.AnswerNotInOptions.Count != 0 || rep.TopicQuestionLevelMismatch.Count != 0 {
		t.Fatalf("expected remaining counters zero, got %+v", rep)
	}

	wantDup := map[string]bool{"dup-0": true, "dup-1": true, "dup-2": true}
	for _, s := range rep.DuplicateOptionsExact.Samples {
		if !wantDup[s.ID] {
			t.Fatalf("unexpected duplicate sample %q", s.ID)
		}
	}
	if len(rep.DuplicateOptionsExact.Samples) != 3 {
		t.Fatalf("expected 3 duplicate samples, got %d", len(rep.DuplicateOptionsExact.Samples))
	}
	if rep.InvalidAnswerJSON.Samples[0].ID != "bad-json" {
		t.Fatalf("expected bad-json sample, got %+v", rep.InvalidAnswerJSON.Samples)
	}
}

func TestAuditLevelFilter(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuestionStore([]domain.Question{
		mcq("low", "E1"),
		mcq("mid", "L1"),
		mcq("high", "L5"),
	})
	auditor := audit.New(store, memory.NewStaticTopicDirectory(nil))

	rep, err := auditor.Run(ctx, domain.QuestionFilter{MaxLevel: "L1"})
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if rep.Scanned != 2 {
		t.Fatalf("expected 2 records at or below L1, got %d", rep.Scanned)
	}
}

func TestAuditTopicLevelMismatch(t *testing.T) {
	ctx := context.Background()
	q := mcq("q1", "E2")
	q.TopicID = "topic-1"
	store := memory.NewQuestionStore([]domain.Question{q})
	topics := memory.NewStaticTopicDirectory(map[string]domain.Topic{
		"topic-1": {ID: "topic-1", Slug: "fractions", UKLevelID: "L1"},
	})

	rep, err := audit.New(store, topics).Run(ctx, domain.QuestionFilter{})
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if rep.TopicQuestionLevelMismatch.Count != 1 {
		t.Fatalf("expected level mismatch, got %+v", rep.TopicQuestionLevelMismatch)
	}
}

func TestAuditSampleCap(t *testing.T) {
	ctx := context.Background()
	var records []domain.Question
	for i := 0; i < 15; i++ {
		q := mcq(fmt.Sprintf("dup-%d", i), "E1")
		q.Options = json.RawMessage(`["Paris","Paris ","London"]`)
		records = append(records, q)
	}
	store := memory.NewQuestionStore(records)

	rep, err := audit.New(store, memory.NewStaticTopicDirectory(nil)).Run(ctx, domain.QuestionFilter{})
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if rep.DuplicateOptionsExact.Count != 15 {
		t.Fatalf("expected count 15, got %d", rep.DuplicateOptionsExact.Count)
	}
	if len(rep.DuplicateOptionsExact.Samples) != 10 {
		t.Fatalf("expected samples capped at 10, got %d", len(rep.DuplicateOptionsExact.Samples))
	}
}

func mcq(id, level string) domain.Question {
	return domain.Question{
		ID:          id,
		Type:        domain.TypeMCQ,
		Prompt:      "Pick one.",
		Options:     json.RawMessage(`["A","B","C","D"]`),
		AnswerRaw:   json.RawMessage(`0`),
		Explanation: "Steady practice helps.",
		Published:   true,
		UKLevelID:   level,
		Track:       "maths",
	}
}

// defectCorpus is 20 records: 3 with duplicate options, 2 whose explanation
// contradicts the stored answer, 1 with malformed answer JSON, 14 clean.
func defectCorpus() []domain.Question {
	var out []domain.Question
	for i := 0; i < 14; i++ {
		out = append(out, mcq(fmt.Sprintf("clean-%d", i), "E3"))
	}
	for i := 0; i < 3; i++ {
		q := mcq(fmt.Sprintf("dup-%d", i), "E3")
		q.Options = json.RawMessage(`["Paris","London","Paris ","Berlin"]`)
		out = append(out, q)
	}
	for i := 0; i < 2; i++ {
		q := mcq(fmt.Sprintf("contradict-%d", i), "E3")
		q.Options = json.RawMessage(`["Paris","London","Rome","Berlin"]`)
		q.AnswerRaw = json.RawMessage(`1`)
		q.Explanation = "France's capital has been settled since antiquity, so the answer is Paris."
		out = append(out, q)
	}
	bad := mcq("bad-json", "E3")
	bad.AnswerRaw = json.RawMessage(`{oops`)
	out = append(out, bad)
	return out
}
