package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetExpire(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "services:list", []byte(`[1]`), time.Minute))
	got, err := m.Get(ctx, "services:list")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, m.Set(ctx, "tools:list", []byte(`[]`), -time.Second))
	_, err = m.Get(ctx, "tools:list")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemory_InvalidatePrefix(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "blog:list:q=:tag=", []byte("a"), time.Minute)
	_ = m.Set(ctx, "blog:tags", []byte("b"), time.Minute)
	_ = m.Set(ctx, "works:list", []byte("c"), time.Minute)

	require.NoError(t, m.InvalidatePrefix(ctx, "blog:"))

	_, err := m.Get(ctx, "blog:tags")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = m.Get(ctx, "works:list")
	assert.NoError(t, err)
}

func TestGetOrLoad_CachesValue(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"Consulting"}, nil
	}

	first, err := GetOrLoad(ctx, m, "services:list", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, m, "services:list", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	_, err := GetOrLoad(ctx, m, "works:list", time.Minute, func(context.Context) (int, error) {
		return 0, errors.New("db down")
	})
	assert.Error(t, err)

	_, err = m.Get(ctx, "works:list")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGetOrLoad_InvalidationDuringLoadWins(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	loading := make(chan struct{})
	release := make(chan struct{})
	done := make(chan []string)

	go func() {
		stale, _ := GetOrLoad(ctx, m, "services:list", time.Minute, func(context.Context) ([]string, error) {
			close(loading)
			<-release
			return []string{"deleted-row"}, nil
		})
		done <- stale
	}()

	<-loading
	// Запись админки завершилась, пока публичное чтение ещё грузит старые строки
	require.NoError(t, m.InvalidatePrefix(ctx, "services:"))
	close(release)
	assert.Equal(t, []string{"deleted-row"}, <-done)

	fresh, err := GetOrLoad(ctx, m, "services:list", time.Minute, func(context.Context) ([]string, error) {
		return []string{}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestGetOrLoad_ZeroTTLDisablesCaching(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := GetOrLoad(ctx, m, "tools:list", 0, load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, m, "tools:list", 0, load)
	require.NoError(t, err)

	assert.Equal(t, 2, second)
	assert.Equal(t, 2, calls)
}

func TestMemory_GenerationBumpsPerPrefix(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.InvalidatePrefix(ctx, "blog:"))
	require.NoError(t, m.InvalidatePrefix(ctx, "blog:"))

	gen, err := m.Generation(ctx, "blog:")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), gen)

	gen, err = m.Generation(ctx, "works:")
	require.NoError(t, err)
	assert.Zero(t, gen)
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "blog:", KeyPrefix("blog:post:hello"))
	assert.Equal(t, "services:", KeyPrefix("services:list"))
	assert.Equal(t, "plain", KeyPrefix("plain"))
}

func TestGetOrLoad_NilCache(t *testing.T) {
	v, err := GetOrLoad(context.Background(), nil, "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "memory", c.Name())
}

func TestRedis_RoundTrip(t *testing.T) {
	url := os.Getenv("PORTFOLIO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PORTFOLIO_TEST_REDIS_URL не задан")
	}

	r, err := NewRedis(url, "portfolio-test:")
	require.NoError(t, err)
	defer r.Close()
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "blog:tags", []byte(`["go"]`), time.Minute))
	got, err := r.Get(ctx, "blog:tags")
	require.NoError(t, err)
	assert.Equal(t, `["go"]`, string(got))

	before, err := r.Generation(ctx, "blog:")
	require.NoError(t, err)

	require.NoError(t, r.InvalidatePrefix(ctx, "blog:"))
	_, err = r.Get(ctx, "blog:tags")
	assert.ErrorIs(t, err, ErrCacheMiss)

	after, err := r.Generation(ctx, "blog:")
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	require.NoError(t, r.Set(ctx, "tools:list", []byte(`[]`), 0))
	_, err = r.Get(ctx, "tools:list")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
