package postgres

import (
	"context"
	"fmt"
	"strings"

	"content-normalizer/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionStore reads and patches question rows in Postgres. JSON-typed
// columns are passed through raw; the engine owns their interpretation.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

const questionColumns = `id, qtype, prompt, COALESCE(options::text,''), COALESCE(answer::text,''), COALESCE(explanation,''), is_published, COALESCE(uk_level_id,''), COALESCE(topic_id,''), COALESCE(track,''), COALESCE(category,''), COALESCE(source_meta::text,'')`

func (s *QuestionStore) ListQuestions(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions`
	var args []interface{}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(` WHERE category=$%d`, len(args))
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		// Level ordering is an application-side ladder, not a SQL collation.
		if f.MaxLevel != "" && !domain.LevelAtMost(q.UKLevelID, f.MaxLevel) {
			continue
		}
		out = append(out, q)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func scanQuestion(rows pgx.Rows) (domain.Question, error) {
	var q domain.Question
	var qtype, options, answer, sourceMeta string
	if err := rows.Scan(&q.ID, &qtype, &q.Prompt, &options, &answer, &q.Explanation,
		&q.Published, &q.UKLevelID, &q.TopicID, &q.Track, &q.Category, &sourceMeta); err != nil {
		return domain.Question{}, err
	}
	q.Type = domain.QuestionType(qtype)
	q.Options = []byte(options)
	q.AnswerRaw = []byte(answer)
	q.SourceMeta = []byte(sourceMeta)
	return q, nil
}

func (s *QuestionStore) UpdateQuestion(ctx context.Context, id string, patch domain.QuestionPatch) error {
	if patch.Empty() {
		return nil
	}

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.Options != nil {
		add("options", string(patch.Options))
	}
	if patch.AnswerRaw != nil {
		add("answer", string(patch.AnswerRaw))
	}
	if patch.SourceMeta != nil {
		add("source_meta", string(patch.SourceMeta))
	}
	if patch.UKLevelID != nil {
		add("uk_level_id", *patch.UKLevelID)
	}
	if patch.Published != nil {
		add("is_published", *patch.Published)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE questions SET %s WHERE id=$%d`, strings.Join(sets, ", "), len(args))
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update question %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// TopicStore loads topic rows; pair it with memory.TopicCache.
type TopicStore struct {
	pool *pgxpool.Pool
}

func NewTopicStore(pool *pgxpool.Pool) *TopicStore {
	return &TopicStore{pool: pool}
}

func (s *TopicStore) LoadTopic(ctx context.Context, topicID string) (domain.Topic, error) {
	var t domain.Topic
	err := s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(slug,''), COALESCE(uk_level_id,'') FROM topics WHERE id=$1`, topicID).
		Scan(&t.ID, &t.Slug, &t.UKLevelID)
	if err == pgx.ErrNoRows {
		return domain.Topic{}, domain.ErrTopicNotFound
	}
	if err != nil {
		return domain.Topic{}, fmt.Errorf("load topic: %w", err)
	}
	return t, nil
}
