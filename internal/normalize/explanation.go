package normalize

import (
	"regexp"
	"strings"
)

// Extraction strategies, in decreasing trust. Trailing numbers show up in
// explanations for unrelated reasons (computed quantities), so "number"
// candidates must never override a successful stored resolution.
const (
	StrategyPhrase = "phrase"
	StrategyNumber = "number"
)

// Candidate is an answer stated in explanation prose, with its extraction
// strategy so callers can weigh how much to trust it.
type Candidate struct {
	Text   string
	Source string
}

var (
	// A trailing "the answer is X" / "answer: X" / "= X" clause. The greedy
	// prefix pins the match to the last marker, so the capture is only the
	// final clause of the text.
	phrasePattern = regexp.MustCompile(`(?i)^.*(?:\banswer\s*[:=]|=|\bis\b)\s*([^.!?\n]+?)\s*[.!?]*\s*$`)
	// A bare numeral at the very end of the text.
	numberPattern = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*[.!?]*\s*$`)
)

// ExtractCandidate pulls a stated answer out of free-text explanation.
// Returns nil when the text states nothing extractable.
func ExtractCandidate(explanation string) *Candidate {
	text := strings.TrimSpace(explanation)
	if text == "" {
		return nil
	}
	// Only the final line can state the answer; the patterns anchor there.
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[i+1:])
	}

	if m := phrasePattern.FindStringSubmatch(text); m != nil {
		cand := strings.TrimSpace(m[1])
		// "...the answer is B, 42": the final clause names the value.
		if i := strings.LastIndex(cand, ","); i >= 0 {
			cand = strings.TrimSpace(cand[i+1:])
		}
		cand = strings.Trim(cand, `"'`)
		if cand != "" {
			return &Candidate{Text: cand, Source: StrategyPhrase}
		}
	}

	if m := numberPattern.FindStringSubmatch(text); m != nil {
		return &Candidate{Text: m[1], Source: StrategyNumber}
	}
	return nil
}
