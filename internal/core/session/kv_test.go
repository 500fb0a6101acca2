package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/database"
)

func newGormKV(t *testing.T) *GormKV {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(&Entry{}))
	return NewGormKV(db.GORM)
}

func newRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisKVWithClient(client, "", time.Hour), s
}

func TestKVBackends(t *testing.T) {
	redisKV, _ := newRedisKV(t)
	backends := map[string]KV{
		"memory": NewMemoryKV(),
		"gorm":   newGormKV(t),
		"redis":  redisKV,
	}

	for name, kv := range backends {
		kv := kv
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := kv.Get(ctx, "s1", KeyUser)
			require.NoError(t, err)
			assert.False(t, ok, "missing entry should not be found")

			require.NoError(t, kv.Set(ctx, "s1", KeyUser, `{"id":"1"}`))
			value, ok, err := kv.Get(ctx, "s1", KeyUser)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"id":"1"}`, value)

			// last write wins
			require.NoError(t, kv.Set(ctx, "s1", KeyUser, `{"id":"2"}`))
			value, _, err = kv.Get(ctx, "s1", KeyUser)
			require.NoError(t, err)
			assert.Equal(t, `{"id":"2"}`, value)

			// namespaces are isolated
			_, ok, err = kv.Get(ctx, "s2", KeyUser)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Delete(ctx, "s1", KeyUser))
			_, ok, err = kv.Get(ctx, "s1", KeyUser)
			require.NoError(t, err)
			assert.False(t, ok)

			// deleting a missing entry is not an error
			require.NoError(t, kv.Delete(ctx, "s1", KeyUser))
		})
	}
}

func TestPurgeBefore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("gorm", func(t *testing.T) {
		kv := newGormKV(t)
		kv.now = func() time.Time { return base }
		require.NoError(t, kv.Set(ctx, "old", KeyUser, "{}"))
		kv.now = func() time.Time { return base.Add(2 * time.Hour) }
		require.NoError(t, kv.Set(ctx, "fresh", KeyUser, "{}"))

		purged, err := kv.PurgeBefore(ctx, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []string{"old"}, purged)

		_, ok, err := kv.Get(ctx, "old", KeyUser)
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = kv.Get(ctx, "fresh", KeyUser)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("memory", func(t *testing.T) {
		kv := NewMemoryKV()
		kv.now = func() time.Time { return base }
		require.NoError(t, kv.Set(ctx, "old", KeyUser, "{}"))
		kv.now = func() time.Time { return base.Add(2 * time.Hour) }
		require.NoError(t, kv.Set(ctx, "fresh", KeyUser, "{}"))

		purged, err := kv.PurgeBefore(ctx, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []string{"old"}, purged)
	})

	t.Run("nothing stale", func(t *testing.T) {
		kv := newGormKV(t)
		require.NoError(t, kv.Set(ctx, "fresh", KeyUser, "{}"))

		purged, err := kv.PurgeBefore(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Empty(t, purged)
	})
}

func TestRedisKV_RefreshesTTL(t *testing.T) {
	kv, s := newRedisKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "s1", KeyUser, "{}"))
	assert.Equal(t, time.Hour, s.TTL(defaultRedisPrefix+"s1"))

	s.FastForward(2 * time.Hour)
	_, ok, err := kv.Get(ctx, "s1", KeyUser)
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire with the session hash")
}
