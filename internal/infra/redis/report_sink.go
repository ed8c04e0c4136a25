package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportSink keeps the latest run report per command under a TTL key so
// dashboards can poll recent results without touching Postgres. Publishing
// is best-effort from the caller's point of view: a failed publish never
// fails the pass.
type ReportSink struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportSink(client *redis.Client, ttl time.Duration) *ReportSink {
	return &ReportSink{client: client, ttl: ttl}
}

// Publish stores the report JSON under the named command key.
func (s *ReportSink) Publish(ctx context.Context, name string, report interface{}) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := s.client.Set(ctx, s.key(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

// Latest returns the most recent report published under name.
func (s *ReportSink) Latest(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("latest report: %w", err)
	}
	return data, nil
}

func (s *ReportSink) key(name string) string {
	return "normalizer:report:" + name
}
