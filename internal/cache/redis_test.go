package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nulltracker-premium/internal/config"
)

type cartEntry struct {
	Variant string
	Yearly  bool
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cache, err := InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := cartEntry{Variant: "complete", Yearly: true}
	require.NoError(t, cache.Set(ctx, "cart:1", expected, time.Minute))

	var actual cartEntry
	found, err := cache.Get(ctx, "cart:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestSetExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "cart:ttl", cartEntry{}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out cartEntry
	found, err := cache.Get(ctx, "cart:ttl", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out cartEntry
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "key"))

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("bad", "not-json"))

	var out cartEntry
	found, err := cache.Get(context.Background(), "bad", &out)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestUpdateBlob(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	_, found, err := cache.GetBlob(ctx, "nulltracker_donors")
	require.NoError(t, err)
	assert.False(t, found)

	err = cache.UpdateBlob(ctx, "nulltracker_donors", 0, func(old []byte, found bool) ([]byte, error) {
		assert.False(t, found)
		assert.Nil(t, old)
		return []byte(`[]`), nil
	})
	require.NoError(t, err)

	raw, found, err := cache.GetBlob(ctx, "nulltracker_donors")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(raw))
	assert.Equal(t, time.Duration(0), mr.TTL("nulltracker_donors"))

	require.NoError(t, cache.UpdateBlob(ctx, "cart:1", time.Minute, func([]byte, bool) ([]byte, error) {
		return []byte(`{}`), nil
	}))
	assert.Equal(t, time.Minute, mr.TTL("cart:1"))
}

func TestUpdateBlob_CallbackErrorKeepsValue(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("k", "old"))

	errStop := errors.New("stop")
	err := cache.UpdateBlob(ctx, "k", 0, func(old []byte, found bool) ([]byte, error) {
		assert.True(t, found)
		assert.Equal(t, "old", string(old))
		return nil, errStop
	})
	assert.ErrorIs(t, err, errStop)

	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "old", got)
}

func TestUpdateBlob_ConcurrentIncrements(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := cache.UpdateBlob(ctx, "counter", 0, func(old []byte, found bool) ([]byte, error) {
				n := 0
				if found {
					var err error
					if n, err = strconv.Atoi(string(old)); err != nil {
						return nil, err
					}
				}
				return []byte(strconv.Itoa(n + 1)), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := mr.Get("counter")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(workers), got)
}

func TestInitServer_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := InitServer(ctx, config.RedisConnection{AddressRedis: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	assert.Error(t, err)
}

func TestPingAfterServerClose(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, cache.Ping(context.Background()))
	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
