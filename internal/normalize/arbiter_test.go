package normalize

import (
	"encoding/json"
	"testing"

	"content-normalizer/internal/domain"
)

func TestReconcilePhraseOverridesStoredAnswer(t *testing.T) {
	options := []string{"Paris", "London", "Rome", "Berlin"}
	stored := Resolve(domain.TypeMCQ, options, json.RawMessage(`1`)) // London

	cand := ExtractCandidate("The capital of France is not in England, so the answer is Paris.")
	got := Reconcile(stored, cand, options)

	if !got.Resolved() || got.Index != 0 {
		t.Fatalf("expected override to index 0, got %+v", got)
	}
	if got.Source != SourceExplanationPhrase || got.Reason != ReasonExplanationContradiction {
		t.Fatalf("expected contradiction provenance, got %+v", got)
	}
}

func TestReconcileWeakSignalNeverOverrides(t *testing.T) {
	// The trailing number names a different option, but a number candidate
	// must never displace a successful resolution.
	options := []string{"40", "41", "42"}
	stored := Resolve(domain.TypeMCQ, options, json.RawMessage(`1`))

	cand := ExtractCandidate("Add the distances and you get a total of 42")
	if cand == nil || cand.Source != StrategyNumber {
		t.Fatalf("test setup: expected number candidate, got %+v", cand)
	}
	got := Reconcile(stored, cand, options)
	if got != stored {
		t.Fatalf("number candidate overrode a resolved answer: %+v", got)
	}
}

func TestReconcileAgreementKeepsStored(t *testing.T) {
	options := []string{"Paris", "London"}
	stored := Resolve(domain.TypeMCQ, options, json.RawMessage(`1`))

	got := Reconcile(stored, ExtractCandidate("So the answer is London."), options)
	if got != stored {
		t.Fatalf("agreeing candidate changed the result: %+v", got)
	}
}

func TestReconcileFallbackOnFailedResolution(t *testing.T) {
	options := []string{"Paris", "London"}
	stored := Resolve(domain.TypeMCQ, options, json.RawMessage(`"Madrid"`))
	if stored.Resolved() {
		t.Fatalf("test setup: expected unresolved, got %+v", stored)
	}

	got := Reconcile(stored, ExtractCandidate("Everyone knows the answer is Paris."), options)
	if !got.Resolved() || got.Index != 0 || got.Source != SourceExplanationFallback {
		t.Fatalf("expected phrase fallback to 0, got %+v", got)
	}
}

func TestReconcileNumberFallbackAccepted(t *testing.T) {
	options := []string{"40", "41", "42"}
	stored := Resolve(domain.TypeMCQ, options, json.RawMessage(`"none of these"`))
	if stored.Resolved() {
		t.Fatalf("test setup: expected unresolved, got %+v", stored)
	}

	cand := ExtractCandidate("Adding them all up gives 42")
	if cand == nil || cand.Source != StrategyNumber {
		t.Fatalf("test setup: expected number candidate, got %+v", cand)
	}
	got := Reconcile(stored, cand, options)
	if !got.Resolved() || got.Index != 2 || got.Source != SourceExplanationFallback {
		t.Fatalf("expected number fallback to 2, got %+v", got)
	}
}

func TestReconcileNilCandidate(t *testing.T) {
	options := []string{"A", "B"}
	stored := Resolve(domain.TypeMCQ, options, json.RawMessage(`0`))
	if got := Reconcile(stored, nil, options); got != stored {
		t.Fatalf("nil candidate changed the result: %+v", got)
	}
}
