package domain

import "encoding/json"

// QuestionType tags how a question is answered.
type QuestionType string

const (
	TypeMCQ         QuestionType = "mcq"
	TypeTrueFalse   QuestionType = "true_false"
	TypeScenario    QuestionType = "scenario"
	TypeShortAnswer QuestionType = "short_answer"
	TypeOrdering    QuestionType = "ordering"
	TypeSlider      QuestionType = "slider"
	TypeOther       QuestionType = "other"
)

// OptionBased reports whether the answer must index into a fixed option list.
func (t QuestionType) OptionBased() bool {
	switch t {
	case TypeMCQ, TypeTrueFalse, TypeScenario:
		return true
	}
	return false
}

// Question is a stored assessment question as the content store holds it.
// Options, AnswerRaw and SourceMeta stay raw JSON because upstream
// generators wrote them in several incompatible encodings; decoding them
// is the engine's job, not the model's.
type Question struct {
	ID          string          `json:"id"`
	Type        QuestionType    `json:"type"`
	Prompt      string          `json:"prompt"`
	Options     json.RawMessage `json:"options,omitempty"`
	AnswerRaw   json.RawMessage `json:"answer"`
	Explanation string          `json:"explanation,omitempty"`
	Published   bool            `json:"isPublished"`
	UKLevelID   string          `json:"ukLevelId,omitempty"`
	TopicID     string          `json:"topicId,omitempty"`
	Track       string          `json:"track,omitempty"`
	Category    string          `json:"category,omitempty"`
	SourceMeta  json.RawMessage `json:"sourceMeta,omitempty"`
}

// Topic is the parent grouping a question belongs to. Only the level
// assignment matters to the engine.
type Topic struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	UKLevelID string `json:"ukLevelId"`
}

// QuestionFilter narrows a corpus scan. Zero values mean "no restriction".
type QuestionFilter struct {
	Category string
	MaxLevel string // inclusive level code, e.g. "E3"
	Limit    int
}

// QuestionPatch is a partial update; nil fields are left untouched.
type QuestionPatch struct {
	Options    json.RawMessage
	AnswerRaw  json.RawMessage
	SourceMeta json.RawMessage
	UKLevelID  *string
	Published  *bool
}

// Empty reports whether the patch would change nothing.
func (p QuestionPatch) Empty() bool {
	return p.Options == nil && p.AnswerRaw == nil && p.SourceMeta == nil &&
		p.UKLevelID == nil && p.Published == nil
}
