package labels

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Memory keeps label lists in process memory.
type Memory struct {
	mu    sync.RWMutex
	lists map[string][]string
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{lists: make(map[string][]string)}
}

func (m *Memory) List(_ context.Context, category string) ([]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	values, ok := m.lists[category]
	return slices.Clone(values), ok, nil
}

func (m *Memory) Append(_ context.Context, category, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.lists[category], value) {
		return false, nil
	}
	m.lists[category] = append(m.lists[category], value)
	return true, nil
}

func (m *Memory) Delete(_ context.Context, category, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := m.lists[category]
	i := slices.Index(values, value)
	if i < 0 {
		return false, nil
	}
	m.lists[category] = slices.Delete(values, i, i+1)
	return true, nil
}

func (m *Memory) Seed(_ context.Context, category string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lists[category]; ok {
		return nil
	}
	m.lists[category] = slices.Clone(values)
	if m.lists[category] == nil {
		m.lists[category] = []string{}
	}
	return nil
}

// Redis stores each category as a list under "<prefix>:<category>". A set
// under "<prefix>:seeded" remembers which categories exist, so that a list
// emptied by an admin is not re-seeded with defaults.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a Redis backend using keys under prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "labels"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(category string) string { return r.prefix + ":" + category }
func (r *Redis) seededKey() string          { return r.prefix + ":seeded" }

func (r *Redis) List(ctx context.Context, category string) ([]string, bool, error) {
	seeded, err := r.client.SIsMember(ctx, r.seededKey(), category).Result()
	if err != nil {
		return nil, false, err
	}
	if !seeded {
		return nil, false, nil
	}
	values, err := r.client.LRange(ctx, r.key(category), 0, -1).Result()
	if err != nil {
		return nil, true, err
	}
	return values, true, nil
}

// Append is check-then-push; two admins adding the same label at once may both succeed.
func (r *Redis) Append(ctx context.Context, category, value string) (bool, error) {
	_, err := r.client.LPos(ctx, r.key(category), value, redis.LPosArgs{}).Result()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, err
	}
	if err := r.client.RPush(ctx, r.key(category), value).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Delete(ctx context.Context, category, value string) (bool, error) {
	n, err := r.client.LRem(ctx, r.key(category), 0, value).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Redis) Seed(ctx context.Context, category string, values []string) error {
	added, err := r.client.SAdd(ctx, r.seededKey(), category).Result()
	if err != nil {
		return err
	}
	if added == 0 || len(values) == 0 {
		return nil
	}
	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, v)
	}
	return r.client.RPush(ctx, r.key(category), args...).Err()
}
