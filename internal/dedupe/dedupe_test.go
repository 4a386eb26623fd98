package dedupe_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trt-intel/internal/dedupe"
	"github.com/DeafMist/trt-intel/internal/models"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemorySeenAfterMark(t *testing.T) {
	ctx := context.Background()
	store := dedupe.NewMemory(10, time.Minute)

	seen, err := store.Seen(ctx, "alpha")
	require.NoError(t, err)
	require.False(t, seen)

	require.NoError(t, store.Mark(ctx, "alpha"))
	seen, _ = store.Seen(ctx, "alpha")
	require.True(t, seen)
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 4, 11, 9, 0, 0, 0, time.UTC)}
	store := dedupe.NewMemoryWithClock(10, time.Minute, c.now)

	require.NoError(t, store.Mark(ctx, "beta"))
	c.advance(2 * time.Minute)

	seen, _ := store.Seen(ctx, "beta")
	require.False(t, seen)

	require.NoError(t, store.Mark(ctx, "gamma"))
	require.Equal(t, 1, store.Len())
}

func TestMemoryCapacityEvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := dedupe.NewMemory(1, time.Minute)

	require.NoError(t, store.Mark(ctx, "first"))
	require.NoError(t, store.Mark(ctx, "second"))

	seen, _ := store.Seen(ctx, "first")
	require.False(t, seen)
	seen, _ = store.Seen(ctx, "second")
	require.True(t, seen)
}

func TestMemoryEvictsInMarkOrder(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 4, 11, 9, 0, 0, 0, time.UTC)}
	store := dedupe.NewMemoryWithClock(2, time.Minute, c.now)

	require.NoError(t, store.Mark(ctx, "a"))
	c.advance(time.Second)
	require.NoError(t, store.Mark(ctx, "a"))
	c.advance(time.Second)
	require.NoError(t, store.Mark(ctx, "b"))
	c.advance(time.Second)
	require.NoError(t, store.Mark(ctx, "c"))

	seen, _ := store.Seen(ctx, "a")
	require.False(t, seen)
	seen, _ = store.Seen(ctx, "c")
	require.True(t, seen)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := dedupe.NewRedis(client, "", time.Hour)

	seen, err := store.Seen(ctx, "k1")
	require.NoError(t, err)
	require.False(t, seen)

	require.NoError(t, store.Mark(ctx, "k1"))
	seen, err = store.Seen(ctx, "k1")
	require.NoError(t, err)
	require.True(t, seen)
	require.True(t, srv.Exists("dedupe:k1"))

	srv.FastForward(2 * time.Hour)
	seen, err = store.Seen(ctx, "k1")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestFingerprintIgnoresIDAndSpacing(t *testing.T) {
	a := models.NewsItem{ID: "x", Date: "2024-04-11", Title: "Telix  doses first patient", SourceURL: "https://t.example/a"}
	b := models.NewsItem{ID: "y", Date: "2024-04-11", Title: "telix doses first patient ", SourceURL: "https://t.example/a"}
	c := models.NewsItem{ID: "x", Date: "2024-04-12", Title: "Telix doses first patient", SourceURL: "https://t.example/a"}

	require.Equal(t, dedupe.Fingerprint(a), dedupe.Fingerprint(b))
	require.NotEqual(t, dedupe.Fingerprint(a), dedupe.Fingerprint(c))
}
