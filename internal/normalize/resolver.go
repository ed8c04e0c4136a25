package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"content-normalizer/internal/domain"
)

// Status of a resolution attempt.
type Status string

const (
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
)

// Provenance tags. Audit output keys off these, so the weaker heuristics
// (one-based rescue, positional boolean, trailing number) stay inspectable.
const (
	SourceAnswerIndex         = "answer:index"
	SourceAnswerIndexOneBased = "answer:index:one-based"
	SourceAnswerLiteral       = "answer:literal"
	SourceAnswerBoolean       = "answer:boolean"
	SourceAnswerBooleanAssume = "answer:boolean:assume-order"
	SourceAnswerTextIndex     = "answer:text-index"
	SourceAnswerQuoted        = "answer:quoted"
	SourceAnswerFloat         = "answer:float-text"
	SourceExplanationPhrase   = "explanation:phrase"
	SourceExplanationFallback = "explanation:fallback"
)

// Failure and override reasons.
const (
	ReasonInvalidJSON              = "answer_invalid_json"
	ReasonUnsupportedShape         = "answer_unsupported_shape"
	ReasonEmptyAnswer              = "empty_answer"
	ReasonIntegerOutOfRange        = "integer_out_of_range"
	ReasonNoMatch                  = "no_match"
	ReasonExplanationContradiction = "explanation_contradiction"
)

// Resolution is the outcome of mapping a stored answer to canonical form.
// Index is meaningful for option-based types, Literal for free-text types.
type Resolution struct {
	Status  Status `json:"status"`
	Index   int    `json:"canonicalIndex,omitempty"`
	Literal string `json:"canonicalLiteral,omitempty"`
	Source  string `json:"source,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Resolved reports whether the resolution succeeded.
func (r Resolution) Resolved() bool { return r.Status == StatusResolved }

func unresolved(reason string) Resolution {
	return Resolution{Status: StatusUnresolved, Reason: reason}
}

// Resolve maps a raw stored answer to a canonical zero-based option index,
// or to a canonical literal for free-text types. The ladder for option-based
// types is ordered: an integer must be tried as an index before it is tried
// as literal option text, and the one-based rescue runs only after both
// fail, since a stored 1 is ambiguous between conventions.
func Resolve(qt domain.QuestionType, options []string, raw json.RawMessage) Resolution {
	val, err := ParseAnswer(raw)
	if err != nil {
		return unresolved(ReasonInvalidJSON)
	}
	if !qt.OptionBased() {
		return resolveFreeText(val)
	}
	return resolveOption(qt, options, val)
}

func resolveFreeText(val Value) Resolution {
	var lit string
	switch val.Kind {
	case KindText:
		lit = strings.TrimSpace(val.Text)
	case KindInteger:
		lit = strconv.FormatInt(val.Int, 10)
	case KindFloat:
		lit = strconv.FormatFloat(val.Float, 'f', -1, 64)
	case KindBool:
		lit = strconv.FormatBool(val.Bool)
	case KindNull:
		return unresolved(ReasonEmptyAnswer)
	default:
		return unresolved(ReasonUnsupportedShape)
	}
	if lit == "" {
		return unresolved(ReasonEmptyAnswer)
	}
	return Resolution{Status: StatusResolved, Literal: lit, Source: SourceAnswerLiteral}
}

func resolveOption(qt domain.QuestionType, options []string, val Value) Resolution {
	switch val.Kind {
	case KindInteger:
		return resolveInteger(options, val.Int)
	case KindBool:
		return resolveBoolean(options, val.Bool)
	case KindText:
		return resolveText(options, val.Text)
	case KindFloat:
		// Integer-looking values never reach here; ParseAnswer keeps 0 an
		// integer so it resolves as an index, not as literal "0".
		if idx, ok := matchOption(options, strconv.FormatFloat(val.Float, 'f', -1, 64)); ok {
			return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerFloat}
		}
		return unresolved(ReasonNoMatch)
	case KindNull:
		return unresolved(ReasonEmptyAnswer)
	default:
		return unresolved(ReasonUnsupportedShape)
	}
}

func resolveInteger(options []string, i int64) Resolution {
	if i >= 0 && i < int64(len(options)) {
		return Resolution{Status: StatusResolved, Index: int(i), Source: SourceAnswerIndex}
	}
	// Some generators wrote the numeral itself as the answer (option "42").
	if idx, ok := matchOption(options, strconv.FormatInt(i, 10)); ok {
		return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerLiteral}
	}
	// One-based legacy convention, last because it can shadow a genuine
	// zero-based answer.
	if i >= 1 && i <= int64(len(options)) {
		return Resolution{Status: StatusResolved, Index: int(i - 1), Source: SourceAnswerIndexOneBased}
	}
	return unresolved(ReasonIntegerOutOfRange)
}

func resolveBoolean(options []string, b bool) Resolution {
	text := "False"
	if b {
		text = "True"
	}
	if idx, ok := matchOption(options, text); ok {
		return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerBoolean}
	}
	// No textual match: with exactly two options assume true-first order.
	if len(options) == 2 {
		idx := 1
		if b {
			idx = 0
		}
		return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerBooleanAssume}
	}
	return unresolved(ReasonNoMatch)
}

func resolveText(options []string, s string) Resolution {
	if idx, ok := matchOption(options, s); ok {
		return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerLiteral}
	}
	if idx, ok := textIndex(options, s); ok {
		return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerTextIndex}
	}
	// Double-encoded strings from generators: strip one quote layer, retry.
	if stripped, ok := stripQuotes(s); ok {
		if idx, ok := matchOption(options, stripped); ok {
			return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerQuoted}
		}
		if idx, ok := textIndex(options, stripped); ok {
			return Resolution{Status: StatusResolved, Index: idx, Source: SourceAnswerQuoted}
		}
	}
	return unresolved(ReasonNoMatch)
}

// matchOption finds the first option equal to s modulo normalization.
func matchOption(options []string, s string) (int, bool) {
	want := StrictNorm(s)
	if want == "" {
		return 0, false
	}
	for i, opt := range options {
		if StrictNorm(opt) == want {
			return i, true
		}
	}
	return 0, false
}

// textIndex treats a numeric string as a zero-based index if in range.
func textIndex(options []string, s string) (int, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	if i >= 0 && i < int64(len(options)) {
		return int(i), true
	}
	return 0, false
}

// stripQuotes removes one layer of matching wrapping quotes.
func stripQuotes(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '\'' && first != '"') {
		return "", false
	}
	return s[1 : len(s)-1], true
}
