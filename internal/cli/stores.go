package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"content-normalizer/internal/config"
	"content-normalizer/internal/domain"
	"content-normalizer/internal/infra/memory"
	pgstore "content-normalizer/internal/infra/postgres"
	redissink "content-normalizer/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// questionStore is the store surface shared by every batch command.
type questionStore interface {
	ListQuestions(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error)
	UpdateQuestion(ctx context.Context, id string, patch domain.QuestionPatch) error
}

type topicDirectory interface {
	TopicLevel(ctx context.Context, topicID string) (string, error)
}

type stores struct {
	questions questionStore
	topics    topicDirectory
	sink      *redissink.ReportSink
	cleanup   func()
}

// openStores wires the content store from config: Postgres when configured,
// otherwise a seeded in-memory corpus so dry runs work with no setup.
// Redis is optional and only feeds the report sink.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	s := &stores{cleanup: func() {}}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		topicTTL := config.TTLDuration(cfg.Topics.CacheTTL, 10*time.Minute)
		s.questions = pgstore.NewQuestionStore(pool)
		s.topics = memory.NewTopicCache(pgstore.NewTopicStore(pool), topicTTL)
		s.cleanup = pool.Close
	} else {
		log.Printf("no postgres configured, using seeded in-memory corpus")
		s.questions = memory.NewQuestionStore(sampleQuestions())
		s.topics = memory.NewStaticTopicDirectory(sampleTopics())
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		reportTTL := config.TTLDuration(cfg.Report.TTL, 24*time.Hour)
		s.sink = redissink.NewReportSink(client, reportTTL)
		prev := s.cleanup
		s.cleanup = func() {
			_ = client.Close()
			prev()
		}
	}
	return s, nil
}

// printReport writes the final counters object to stdout as JSON.
func printReport(report interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// publishReport pushes the report to the Redis sink when configured.
// Best-effort: a sink failure is logged, never fatal.
func (s *stores) publishReport(ctx context.Context, name string, report interface{}) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(ctx, name, report); err != nil {
		log.Printf("publish %s report: %v", name, err)
	}
}
