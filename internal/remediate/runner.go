// Package remediate orchestrates batch normalization passes over the
// question corpus, in dry-run or apply mode.
package remediate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"content-normalizer/internal/domain"
	"content-normalizer/internal/normalize"
)

// Store is the narrow content-store surface the runner needs. Records are
// independent; no transaction spans more than one update.
type Store interface {
	ListQuestions(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error)
	UpdateQuestion(ctx context.Context, id string, patch domain.QuestionPatch) error
}

// TopicDirectory resolves a topic's assigned level, for --align-levels.
type TopicDirectory interface {
	TopicLevel(ctx context.Context, topicID string) (string, error)
}

// Options configures a single pass. Validated once at the CLI boundary and
// passed by value.
type Options struct {
	Apply               bool
	Canonicalize        bool // rewrite every answer to its canonical JSON scalar
	AlignLevels         bool
	IgnoreExplanation   bool
	UnpublishUnresolved bool
	Category            string
	MaxLevel            string
	Limit               int
}

// Report is the aggregate counters object every pass prints.
type Report struct {
	Mode             string           `json:"mode"`
	Scanned          int              `json:"scanned"`
	Skipped          int              `json:"skipped"`
	Changed          int              `json:"changed"`
	OptionsDeduped   int              `json:"optionsDeduped"`
	AnswersRewritten int              `json:"answersRewritten"`
	Unresolved       int              `json:"unresolved"`
	NotesAppended    int              `json:"notesAppended"`
	LevelsAligned    int              `json:"levelsAligned"`
	Unpublished      int              `json:"unpublished"`
	RecordErrors     int              `json:"recordErrors"`
	PostCheck        *PostCheckReport `json:"postCheck,omitempty"`
}

// PostCheckReport surfaces answers invalidated by option dedup: a shrunk
// list can leave a previously-valid index pointing past the new end.
type PostCheckReport struct {
	Scanned      int      `json:"scanned"`
	InvalidIndex int      `json:"invalidIndex"`
	RecordIDs    []string `json:"recordIds,omitempty"`
}

// Runner executes the scan → resolve → diff → persist pipeline. Resolution
// is a pure function of the record, so re-running apply on an unchanged
// corpus yields zero further diffs.
type Runner struct {
	store  Store
	topics TopicDirectory
}

func New(store Store, topics TopicDirectory) *Runner {
	return &Runner{store: store, topics: topics}
}

// Run processes the corpus sequentially. Per-record defects are counted and
// never abort the pass; only store failures on the initial scan propagate.
func (r *Runner) Run(ctx context.Context, opts Options) (Report, error) {
	rep := Report{Mode: "dry-run"}
	if opts.Apply {
		rep.Mode = "apply"
	}

	filter := domain.QuestionFilter{Category: opts.Category, MaxLevel: opts.MaxLevel, Limit: opts.Limit}
	records, err := r.store.ListQuestions(ctx, filter)
	if err != nil {
		return rep, fmt.Errorf("list questions: %w", err)
	}

	optionsChanged := false
	for _, q := range records {
		rep.Scanned++
		patch := r.diffRecord(ctx, q, opts, &rep)
		if patch.Empty() {
			continue
		}
		rep.Changed++
		if patch.Options != nil {
			optionsChanged = true
		}
		if !opts.Apply {
			continue
		}
		if err := r.store.UpdateQuestion(ctx, q.ID, patch); err != nil {
			rep.RecordErrors++
			log.Printf("update %s: %v", q.ID, err)
		}
	}

	if opts.Apply && optionsChanged {
		pc, err := r.postCheck(ctx, filter)
		if err != nil {
			return rep, err
		}
		rep.PostCheck = &pc
	}
	return rep, nil
}

// diffRecord computes the patch a single record needs. It mutates nothing.
func (r *Runner) diffRecord(ctx context.Context, q domain.Question, opts Options, rep *Report) domain.QuestionPatch {
	var patch domain.QuestionPatch

	if opts.AlignLevels && q.TopicID != "" && r.topics != nil {
		if level, err := r.topics.TopicLevel(ctx, q.TopicID); err == nil && level != "" && level != q.UKLevelID {
			patch.UKLevelID = &level
			rep.LevelsAligned++
		}
	}

	if q.Type.OptionBased() {
		r.diffOptionBased(q, opts, &patch, rep)
	} else if opts.Canonicalize {
		r.diffFreeText(q, opts, &patch, rep)
	}
	return patch
}

func (r *Runner) diffOptionBased(q domain.Question, opts Options, patch *domain.QuestionPatch, rep *Report) {
	options, err := normalize.ParseOptions(q.Options)
	if err != nil {
		// Malformed options leave nothing to resolve against; the record
		// is left untouched for manual repair.
		rep.Skipped++
		return
	}

	deduped := normalize.DedupeExact(options)
	if len(deduped) < 2 {
		rep.Skipped++
		return
	}
	if len(deduped) != len(options) {
		if encoded, err := json.Marshal(deduped); err == nil {
			patch.Options = encoded
			rep.OptionsDeduped++
		}
	}

	res := normalize.Resolve(q.Type, deduped, q.AnswerRaw)
	if !opts.IgnoreExplanation {
		res = normalize.Reconcile(res, normalize.ExtractCandidate(q.Explanation), deduped)
	}

	if res.Resolved() {
		overridden := res.Reason == normalize.ReasonExplanationContradiction
		if opts.Canonicalize || overridden {
			encoded, _ := json.Marshal(res.Index)
			if !jsonEqual(q.AnswerRaw, encoded) {
				patch.AnswerRaw = encoded
				rep.AnswersRewritten++
			}
		}
		return
	}

	rep.Unresolved++
	if opts.Canonicalize {
		// Even an unresolved answer must round-trip as valid JSON.
		if encoded := recodeRaw(q.AnswerRaw); encoded != nil && !jsonEqual(q.AnswerRaw, encoded) {
			patch.AnswerRaw = encoded
			rep.AnswersRewritten++
		}
	}
	if meta, added := appendIssue(q.SourceMeta, "unresolved_answer:"+res.Reason); added {
		patch.SourceMeta = meta
		rep.NotesAppended++
	}
	if opts.UnpublishUnresolved && q.Published {
		published := false
		patch.Published = &published
		rep.Unpublished++
	}
}

func (r *Runner) diffFreeText(q domain.Question, opts Options, patch *domain.QuestionPatch, rep *Report) {
	res := normalize.Resolve(q.Type, nil, q.AnswerRaw)
	if res.Resolved() {
		encoded, _ := json.Marshal(res.Literal)
		if !jsonEqual(q.AnswerRaw, encoded) {
			patch.AnswerRaw = encoded
			rep.AnswersRewritten++
		}
		return
	}

	rep.Unresolved++
	if encoded := recodeRaw(q.AnswerRaw); encoded != nil && !jsonEqual(q.AnswerRaw, encoded) {
		patch.AnswerRaw = encoded
		rep.AnswersRewritten++
	}
	if meta, added := appendIssue(q.SourceMeta, "unresolved_answer:"+res.Reason); added {
		patch.SourceMeta = meta
		rep.NotesAppended++
	}
	if opts.UnpublishUnresolved && q.Published {
		published := false
		patch.Published = &published
		rep.Unpublished++
	}
}

// postCheck re-scans option-based records after an apply pass that rewrote
// option arrays and reports stored indexes that no longer fit.
func (r *Runner) postCheck(ctx context.Context, filter domain.QuestionFilter) (PostCheckReport, error) {
	var pc PostCheckReport
	records, err := r.store.ListQuestions(ctx, filter)
	if err != nil {
		return pc, fmt.Errorf("post-check list questions: %w", err)
	}
	for _, q := range records {
		if !q.Type.OptionBased() {
			continue
		}
		options, err := normalize.ParseOptions(q.Options)
		if err != nil {
			continue
		}
		pc.Scanned++
		val, err := normalize.ParseAnswer(q.AnswerRaw)
		if err != nil || val.Kind != normalize.KindInteger {
			continue
		}
		if val.Int < 0 || val.Int >= int64(len(options)) {
			pc.InvalidIndex++
			pc.RecordIDs = append(pc.RecordIDs, q.ID)
			log.Printf("post-check: %s answer index %d out of range for %d options", q.ID, val.Int, len(options))
		}
	}
	return pc, nil
}

// recodeRaw re-serializes an answer as a single JSON scalar. Valid scalars
// pass through compacted; bare legacy strings are quoted; composites are
// left alone (nil) since flattening them would destroy information.
func recodeRaw(raw json.RawMessage) json.RawMessage {
	val, err := normalize.ParseAnswer(raw)
	if err != nil {
		encoded, _ := json.Marshal(strings.TrimSpace(string(raw)))
		return encoded
	}
	switch val.Kind {
	case normalize.KindText:
		encoded, _ := json.Marshal(val.Text)
		return encoded
	case normalize.KindInteger, normalize.KindFloat, normalize.KindBool, normalize.KindNull:
		var buf bytes.Buffer
		if json.Compact(&buf, bytes.TrimSpace(raw)) != nil {
			return nil
		}
		return buf.Bytes()
	default:
		return nil
	}
}

// appendIssue merges a triage note into sourceMeta.normalizationIssues,
// preserving unrelated keys. Appending is idempotent per note category (the
// prefix before the first colon): re-encoding an unresolved answer can shift
// its failure reason between runs, and that must not grow the list forever.
func appendIssue(meta json.RawMessage, note string) (json.RawMessage, bool) {
	category := note
	if i := strings.IndexByte(note, ':'); i >= 0 {
		category = note[:i+1]
	}

	m := map[string]interface{}{}
	if len(bytes.TrimSpace(meta)) > 0 {
		if err := json.Unmarshal(meta, &m); err != nil {
			m = map[string]interface{}{}
		}
	}

	var issues []string
	if existing, ok := m["normalizationIssues"].([]interface{}); ok {
		for _, v := range existing {
			if s, ok := v.(string); ok {
				if s == note || strings.HasPrefix(s, category) {
					return nil, false
				}
				issues = append(issues, s)
			}
		}
	}
	issues = append(issues, note)
	m["normalizationIssues"] = issues

	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, false
	}
	return encoded, true
}

// jsonEqual compares two JSON documents modulo whitespace.
func jsonEqual(a, b json.RawMessage) bool {
	var ab, bb bytes.Buffer
	if json.Compact(&ab, bytes.TrimSpace(a)) != nil {
		return false
	}
	if json.Compact(&bb, bytes.TrimSpace(b)) != nil {
		return false
	}
	return bytes.Equal(ab.Bytes(), bb.Bytes())
}
