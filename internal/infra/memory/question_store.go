package memory

import (
	"context"
	"sync"

	"content-normalizer/internal/domain"
)

// QuestionStore is an in-memory content store, used for tests and for dry
// runs when no Postgres is configured. Listing order is insertion order so
// reports stay deterministic.
type QuestionStore struct {
	mu        sync.RWMutex
	order     []string
	questions map[string]domain.Question
}

func NewQuestionStore(seed []domain.Question) *QuestionStore {
	s := &QuestionStore{questions: make(map[string]domain.Question, len(seed))}
	for _, q := range seed {
		if _, ok := s.questions[q.ID]; !ok {
			s.order = append(s.order, q.ID)
		}
		s.questions[q.ID] = q
	}
	return s
}

func (s *QuestionStore) ListQuestions(_ context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Question, 0, len(s.order))
	for _, id := range s.order {
		q := s.questions[id]
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.MaxLevel != "" && !domain.LevelAtMost(q.UKLevelID, f.MaxLevel) {
			continue
		}
		out = append(out, q)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (s *QuestionStore) UpdateQuestion(_ context.Context, id string, patch domain.QuestionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if patch.Options != nil {
		q.Options = patch.Options
	}
	if patch.AnswerRaw != nil {
		q.AnswerRaw = patch.AnswerRaw
	}
	if patch.SourceMeta != nil {
		q.SourceMeta = patch.SourceMeta
	}
	if patch.UKLevelID != nil {
		q.UKLevelID = *patch.UKLevelID
	}
	if patch.Published != nil {
		q.Published = *patch.Published
	}
	s.questions[id] = q
	return nil
}

// Get returns a record by id; test helper.
func (s *QuestionStore) Get(id string) (domain.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	return q, ok
}

// StaticTopicDirectory serves topic levels from a fixed map.
type StaticTopicDirectory struct {
	topics map[string]domain.Topic
}

func NewStaticTopicDirectory(topics map[string]domain.Topic) *StaticTopicDirectory {
	return &StaticTopicDirectory{topics: topics}
}

func (d *StaticTopicDirectory) TopicLevel(_ context.Context, topicID string) (string, error) {
	if t, ok := d.topics[topicID]; ok {
		return t.UKLevelID, nil
	}
	return "", domain.ErrTopicNotFound
}

func (d *StaticTopicDirectory) LoadTopic(_ context.Context, topicID string) (domain.Topic, error) {
	if t, ok := d.topics[topicID]; ok {
		return t, nil
	}
	return domain.Topic{}, domain.ErrTopicNotFound
}
