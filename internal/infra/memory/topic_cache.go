package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"content-normalizer/internal/domain"
	"golang.org/x/sync/singleflight"
)

// TopicLoader fetches topic rows from a backing store.
type TopicLoader interface {
	LoadTopic(ctx context.Context, topicID string) (domain.Topic, error)
}

// TopicCache caches topic lookups with TTL. Every question in a topic asks
// for the same level during a pass, so this keeps the audit from hammering
// the topics table once per record.
type TopicCache struct {
	loader TopicLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedTopic
}

type cachedTopic struct {
	topic     domain.Topic
	expiresAt time.Time
}

func NewTopicCache(loader TopicLoader, ttl time.Duration) *TopicCache {
	return &TopicCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedTopic),
	}
}

func (c *TopicCache) TopicLevel(ctx context.Context, topicID string) (string, error) {
	topic, err := c.getTopic(ctx, topicID)
	if err != nil {
		return "", err
	}
	return topic.UKLevelID, nil
}

func (c *TopicCache) getTopic(ctx context.Context, topicID string) (domain.Topic, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[topicID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.topic, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(topicID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[topicID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.topic, nil
		}
		c.mu.RUnlock()

		topic, err := c.loader.LoadTopic(ctx, topicID)
		if err != nil {
			return domain.Topic{}, err
		}

		c.mu.Lock()
		c.cache[topicID] = cachedTopic{
			topic:     topic,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return topic, nil
	})
	if err != nil {
		return domain.Topic{}, err
	}
	return result.(domain.Topic), nil
}

func (c *TopicCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
