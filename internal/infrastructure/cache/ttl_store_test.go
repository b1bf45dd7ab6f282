package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetSet(t *testing.T) {
	store := NewStore[string]("test", time.Minute, 10)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("a", "alpha")
	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", got)

	store.Set("a", "alpha2")
	got, _ = store.Get("a")
	assert.Equal(t, "alpha2", got)

	store.Delete("a")
	_, ok = store.Get("a")
	assert.False(t, ok)
}

func TestStoreTTLExpiry(t *testing.T) {
	store := NewStore[int]("test", 10*time.Millisecond, 10)

	store.Set("a", 1)
	_, ok := store.Get("a")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = store.Get("a")
	assert.False(t, ok)
	// The stale entry is dropped on read.
	assert.Zero(t, store.Stats().Entries)
}

func TestStoreDeletePrefix(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 10)
	store.Set("alice|x", 1)
	store.Set("alice|y", 2)
	store.Set("bob|x", 3)

	assert.Equal(t, 2, store.DeletePrefix("alice|"))

	_, ok := store.Get("alice|x")
	assert.False(t, ok)
	_, ok = store.Get("bob|x")
	assert.True(t, ok)

	assert.Zero(t, store.DeletePrefix("carol|"))
}

func TestStoreEvictsSoonestExpiring(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 2)

	store.Set("first", 1)
	time.Sleep(2 * time.Millisecond)
	store.Set("second", 2)
	store.Set("third", 3)

	// "first" had the earliest expiry and is gone.
	_, ok := store.Get("first")
	assert.False(t, ok)
	_, ok = store.Get("second")
	assert.True(t, ok)
	_, ok = store.Get("third")
	assert.True(t, ok)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestStoreOverwriteDoesNotEvict(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 2)
	store.Set("a", 1)
	store.Set("b", 2)
	store.Set("a", 3)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Zero(t, stats.Evictions)
}

func TestStoreStatsCounters(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 10)

	store.Get("a")
	store.Set("a", 1)
	store.Get("a")
	store.Get("a")

	stats := store.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestStorePurge(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 10)
	store.Set("a", 1)
	store.Set("b", 2)

	store.Purge()
	assert.Zero(t, store.Stats().Entries)
}

func TestStoreDefaultCapacity(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 0)
	assert.Equal(t, 1000, store.maxEntries)
}
