package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Kind discriminates the shapes a stored answer value can take after one
// JSON decode step. Resolution dispatches on the kind, never on raw bytes.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindText
	KindComposite // array or object; never a usable answer
)

// Value is the tagged union produced from a raw stored answer.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Text  string
}

// ErrInvalidAnswerJSON marks a stored answer that is neither valid JSON nor
// a plausible bare string.
var ErrInvalidAnswerJSON = errors.New("stored answer is not valid JSON")

// ParseAnswer decodes a stored answer into a tagged Value. Upstream
// generators wrote answers as indexes, numerals, literals, booleans and
// floats; a bare unquoted string (legacy seed rows) is accepted as text as
// long as it carries no JSON structural characters.
func ParseAnswer(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Value{Kind: KindNull}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil || dec.More() {
		if bareString(trimmed) {
			return Value{Kind: KindText, Text: string(trimmed)}, nil
		}
		return Value{}, ErrInvalidAnswerJSON
	}

	switch t := v.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case string:
		return Value{Kind: KindText, Text: t}, nil
	case json.Number:
		if i, err := t.Int64(); err == nil && !strings.ContainsAny(t.String(), ".eE") {
			return Value{Kind: KindInteger, Int: i}, nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, ErrInvalidAnswerJSON
		}
		return Value{Kind: KindFloat, Float: f}, nil
	default:
		return Value{Kind: KindComposite}, nil
	}
}

// bareString reports whether raw looks like legacy plain text rather than a
// malformed JSON document.
func bareString(raw []byte) bool {
	return !bytes.ContainsAny(raw, `"{}[]`)
}
