package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/quarryworks/lode/pkg/adapters/redis"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	ports.RunStateStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)

	store := redis.NewFromClient(client,
		redis.WithPrefix("quarry:"),
		redis.WithTTL(time.Minute))

	snap := domain.NewSnapshot([]byte(`{"type":"excavate","direction":"down","denylist":[]}`))
	require.NoError(t, store.Save(ctx, "shaft-1", snap))

	assert.True(t, mr.Exists("quarry:shaft-1"))
	assert.Greater(t, mr.TTL("quarry:shaft-1"), time.Duration(0))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shaft-1"}, sessions)
}

func TestRedisStore_ListPrunesExpired(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(time.Second))

	snap := domain.NewSnapshot([]byte(`{"type":"excavate","direction":"forward","denylist":[]}`))
	require.NoError(t, store.Save(ctx, "short-lived", snap))

	mr.FastForward(2 * time.Second)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
