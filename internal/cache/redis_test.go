package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Name = "from-db"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, PostKey(7), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from-db", first.Name)

	var second cachedThing
	require.NoError(t, Aside(ctx, PostKey(7), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_InvalidateForcesRefetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var thing cachedThing
	fetch := func() error {
		fetches++
		thing.ID = 1
		return nil
	}

	require.NoError(t, Aside(ctx, PostKey(1), &thing, PostTTL, fetch))
	InvalidatePost(ctx, 1)
	require.NoError(t, Aside(ctx, PostKey(1), &thing, PostTTL, fetch))
	assert.Equal(t, 2, fetches)
}

func TestAside_NilClientDegradesToFetch(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var thing cachedThing
	fetch := func() error {
		fetches++
		return nil
	}

	require.NoError(t, Aside(ctx, UserKey(1), &thing, UserTTL, fetch))
	require.NoError(t, Aside(ctx, UserKey(1), &thing, UserTTL, fetch))
	assert.Equal(t, 2, fetches, "without redis every read goes to the DB")
}

func TestSetJSONExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedThing{ID: 3}, time.Minute))

	var got cachedThing
	found, err := GetJSON(ctx, UserKey(3), &got)
	require.NoError(t, err)
	assert.True(t, found)

	mr.FastForward(2 * time.Minute)

	found, err = GetJSON(ctx, UserKey(3), &got)
	require.NoError(t, err)
	assert.False(t, found)
}
