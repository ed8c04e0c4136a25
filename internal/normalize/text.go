// Package normalize resolves heterogeneously-encoded question answers into
// one canonical, machine-checkable form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// LooseNorm canonicalizes text for comparison: NFKC, hyphen and quote
// folding, whitespace runs collapsed to a single space, trimmed. Case is
// preserved. Total: any input maps to some string, never an error.
func LooseNorm(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		r = foldRune(r)
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// StrictNorm is LooseNorm plus lowercasing, for case-insensitive matching.
func StrictNorm(s string) string {
	return strings.ToLower(LooseNorm(s))
}

// foldRune maps typographic hyphens and curly quotes onto their ASCII forms.
func foldRune(r rune) rune {
	switch r {
	case '‐', '‑', '‒', '–', '—', '―', '−', '﹘', '﹣', '－':
		return '-'
	case '‘', '’', '‚', '‛', '′':
		return '\''
	case '“', '”', '„', '‟', '″':
		return '"'
	}
	return r
}
