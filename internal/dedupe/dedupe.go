// Package dedupe remembers which imported news items were already indexed.
package dedupe

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DeafMist/trt-intel/internal/models"
)

// Store tracks fingerprints. Seen does not record anything; callers Mark a
// key only after the item was stored, so a failed index is retried.
type Store interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// Fingerprint identifies an item by content rather than by ID, so the same
// row uploaded twice in different workbooks collapses to one key.
func Fingerprint(item models.NewsItem) string {
	norm := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), " ")) }

	h := sha1.New()
	for _, part := range []string{item.Date, norm(item.Title), norm(item.SourceURL), norm(item.Summary)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	key string
	at  time.Time
}

// Memory keeps a bounded set of recent keys. Entries expire after ttl and the
// oldest entries are evicted once capacity is exceeded.
type Memory struct {
	mu       sync.Mutex
	marked   map[string]time.Time
	fifo     []entry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewMemory creates a memory store with the provided capacity and ttl.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	return NewMemoryWithClock(capacity, ttl, time.Now)
}

// NewMemoryWithClock is NewMemory with a custom time source.
func NewMemoryWithClock(capacity int, ttl time.Duration, now func() time.Time) *Memory {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Memory{
		marked:   make(map[string]time.Time, capacity),
		fifo:     make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      now,
	}
}

func (m *Memory) Seen(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.marked[key]
	return ok && m.now().Sub(at) <= m.ttl, nil
}

func (m *Memory) Mark(_ context.Context, key string) error {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.marked[key] = now
	m.fifo = append(m.fifo, entry{key: key, at: now})
	m.evict(now)
	return nil
}

// Len reports how many keys are currently held.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.marked)
}

func (m *Memory) evict(now time.Time) {
	cutoff := now.Add(-m.ttl)
	for len(m.fifo) > 0 && (len(m.marked) > m.capacity || m.fifo[0].at.Before(cutoff)) {
		oldest := m.fifo[0]
		m.fifo = m.fifo[1:]
		// A re-marked key has a newer entry further back; keep it.
		if at, ok := m.marked[oldest.key]; ok && at.Equal(oldest.at) {
			delete(m.marked, oldest.key)
		}
	}
}

// Redis shares the seen set between worker replicas. Each key lives under
// "<prefix>:<key>" and expires after ttl.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis returns a Redis store using keys under prefix.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = "dedupe"
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Seen(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+":"+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Redis) Mark(ctx context.Context, key string) error {
	return r.client.Set(ctx, r.prefix+":"+key, 1, r.ttl).Err()
}
