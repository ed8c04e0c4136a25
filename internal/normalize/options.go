package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrInvalidOptionsJSON marks a stored options column that does not decode
// to an array of strings.
var ErrInvalidOptionsJSON = errors.New("stored options are not a JSON string array")

// ParseOptions decodes the stored options column. Absent or null options
// are legal for non-option question types and decode to nil.
func ParseOptions(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var opts []string
	if err := json.Unmarshal(trimmed, &opts); err != nil {
		return nil, ErrInvalidOptionsJSON
	}
	return opts, nil
}

// DedupeExact removes options that are the same text modulo formatting,
// keeping the first occurrence verbatim and preserving order. Generated
// corpora sometimes carry a smart-quote or trailing-space twin of the
// correct option, which makes it indistinguishable from a distractor.
func DedupeExact(options []string) []string {
	out := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		key := LooseNorm(opt)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, opt)
	}
	return out
}
