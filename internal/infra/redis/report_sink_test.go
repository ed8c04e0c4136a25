package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestReportSinkPublishesLatest(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewReportSink(client, time.Minute)

	report := map[string]int{"scanned": 20, "changed": 3}
	if err := sink.Publish(context.Background(), "audit", report); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !mr.Exists("normalizer:report:audit") {
		t.Fatalf("expected report key to be set")
	}

	data, err := sink.Latest(context.Background(), "audit")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["scanned"] != 20 || got["changed"] != 3 {
		t.Fatalf("unexpected report %v", got)
	}
}

func TestReportSinkOverwrites(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewReportSink(client, time.Minute)

	_ = sink.Publish(context.Background(), "fix", map[string]int{"changed": 5})
	_ = sink.Publish(context.Background(), "fix", map[string]int{"changed": 0})

	data, err := sink.Latest(context.Background(), "fix")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	var got map[string]int
	_ = json.Unmarshal(data, &got)
	if got["changed"] != 0 {
		t.Fatalf("expected latest run to win, got %v", got)
	}
}
