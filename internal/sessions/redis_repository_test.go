package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisFixture(t *testing.T) (*miniredis.Miniredis, *RedisRepository) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	return m, NewRedisRepository(client, "")
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	_, repo := redisFixture(t)
	ctx := context.Background()

	sess := &Session{
		RefreshToken: "rt-alpha",
		UserID:       "user-10",
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    time.Now().UTC().Add(time.Minute),
	}
	require.NoError(t, repo.Create(ctx, sess))

	got, err := repo.GetByRefresh(ctx, "rt-alpha")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-10", got.UserID)

	require.NoError(t, repo.DeleteByRefresh(ctx, "rt-alpha"))
	got, err = repo.GetByRefresh(ctx, "rt-alpha")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisRepositoryMissingToken(t *testing.T) {
	_, repo := redisFixture(t)

	got, err := repo.GetByRefresh(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisRepositoryExpiry(t *testing.T) {
	m, repo := redisFixture(t)
	ctx := context.Background()

	sess := &Session{
		RefreshToken: "rt-short",
		UserID:       "user-11",
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    time.Now().UTC().Add(time.Second),
	}
	require.NoError(t, repo.Create(ctx, sess))

	got, err := repo.GetByRefresh(ctx, "rt-short")
	require.NoError(t, err)
	require.NotNil(t, got)

	m.FastForward(2 * time.Second)

	got, err = repo.GetByRefresh(ctx, "rt-short")
	require.NoError(t, err)
	assert.Nil(t, got)
}
