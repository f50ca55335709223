/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/biscuit/pkg/cache"
)

// newCache returns a cache whose sweeper stays quiet for the duration
// of the test, so removals happen only on access.
func newCache(t *testing.T, capacity int, defaultTTL time.Duration) *cache.Cache[string, string] {
	c, err := cache.New[string, string](cache.Options{
		Capacity:      capacity,
		DefaultTTL:    defaultTTL,
		SweepInterval: time.Minute,
	})
	assert.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCache(t *testing.T) {
	t.Run("invalid options test", func(t *testing.T) {
		c, err := cache.New[string, string](cache.Options{Capacity: 0, DefaultTTL: time.Minute})
		assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
		assert.Nil(t, c)

		c, err = cache.New[string, string](cache.Options{Capacity: -1, DefaultTTL: time.Minute})
		assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
		assert.Nil(t, c)

		c, err = cache.New[string, string](cache.Options{Capacity: 1})
		assert.ErrorIs(t, err, cache.ErrInvalidTTL)
		assert.Nil(t, c)
	})

	t.Run("default options test", func(t *testing.T) {
		c, err := cache.New[string, string](cache.Options{Capacity: 2, DefaultTTL: time.Minute})
		assert.NoError(t, err)
		defer c.Close()

		assert.Equal(t, cache.DefaultName, c.Name())
		assert.Equal(t, 2, c.Capacity())
	})

	t.Run("put and get test", func(t *testing.T) {
		c, err := cache.New[string, string](cache.Options{
			Capacity:   3,
			DefaultTTL: time.Minute,
			Name:       "pages",
		})
		assert.NoError(t, err)
		defer c.Close()

		assert.Equal(t, "pages", c.Name())

		c.Put("alpha", "1")
		v, ok := c.Get("alpha")
		assert.True(t, ok)
		assert.Equal(t, "1", v)
		assert.Equal(t, 1, c.Len())

		v, ok = c.Get("beta")
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("overwrite test", func(t *testing.T) {
		c := newCache(t, 2, time.Minute)

		c.Put("a", "1")
		c.Put("b", "2")

		// Overwriting a present key replaces its entry without evicting
		// anything, even when the cache is full.
		c.Put("a", "3")
		assert.Equal(t, 2, c.Len())

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "3", v)
		assert.Equal(t, int64(0), c.Stats().Evictions)

		// The overwritten key became most recent, so the next insertion
		// evicts "b".
		c.Put("c", "4")
		_, ok = c.Get("b")
		assert.False(t, ok)
		assert.Equal(t, int64(1), c.Stats().Evictions)
	})

	t.Run("overwrite resets expiry test", func(t *testing.T) {
		c := newCache(t, 2, time.Minute)

		c.PutWithTTL("k", "old", 50*time.Millisecond)
		c.PutWithTTL("k", "new", time.Minute)

		time.Sleep(100 * time.Millisecond)

		// The first expiry died with the first entry.
		v, ok := c.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "new", v)
		assert.Equal(t, int64(0), c.Stats().ExpiredRemovals)
	})

	t.Run("eviction order test", func(t *testing.T) {
		c := newCache(t, 3, time.Minute)

		c.Put("a", "1")
		c.Put("b", "2")
		c.Put("c", "3")
		c.Put("d", "4")

		_, ok := c.Get("a")
		assert.False(t, ok)
		for _, key := range []string{"b", "c", "d"} {
			_, ok := c.Get(key)
			assert.True(t, ok)
		}

		stats := c.Stats()
		assert.Equal(t, int64(1), stats.Evictions)
		assert.Equal(t, 3, stats.CurrentSize)

		c.Put("e", "5")
		assert.Equal(t, int64(2), c.Stats().Evictions)
		assert.Equal(t, 3, c.Len())
	})

	t.Run("get promotes recency test", func(t *testing.T) {
		c := newCache(t, 3, time.Minute)

		c.Put("a", "1")
		c.Put("b", "2")
		c.Put("c", "3")

		// Touch the oldest key, then overflow: the victim is "b", the
		// next-oldest, not the just-accessed "a".
		_, ok := c.Get("a")
		assert.True(t, ok)
		c.Put("d", "4")

		_, ok = c.Get("b")
		assert.False(t, ok)
		for _, key := range []string{"a", "c", "d"} {
			_, ok := c.Get(key)
			assert.True(t, ok)
		}
		assert.Equal(t, int64(1), c.Stats().Evictions)
	})

	t.Run("per-entry ttl overrides default test", func(t *testing.T) {
		c := newCache(t, 2, time.Minute)

		c.PutWithTTL("short", "v", 50*time.Millisecond)
		c.Put("long", "w")

		time.Sleep(100 * time.Millisecond)

		_, ok := c.Get("short")
		assert.False(t, ok)

		v, ok := c.Get("long")
		assert.True(t, ok)
		assert.Equal(t, "w", v)

		stats := c.Stats()
		assert.Equal(t, int64(1), stats.ExpiredRemovals)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(1), stats.Hits)
	})

	t.Run("non-positive ttl means already expired test", func(t *testing.T) {
		c := newCache(t, 4, time.Minute)

		c.PutWithTTL("zero", "v", 0)
		c.PutWithTTL("negative", "w", -time.Second)

		// Born-expired entries still occupy a slot until they are
		// touched or swept.
		assert.Equal(t, 2, c.Len())

		time.Sleep(time.Millisecond)

		_, ok := c.Get("zero")
		assert.False(t, ok)
		_, ok = c.Get("negative")
		assert.False(t, ok)

		assert.Equal(t, int64(2), c.Stats().ExpiredRemovals)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("delete test", func(t *testing.T) {
		c := newCache(t, 2, time.Minute)

		c.Put("a", "1")
		c.Delete("a")

		_, ok := c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())

		// Deleting an absent key is a silent no-op.
		c.Delete("missing")

		stats := c.Stats()
		assert.Equal(t, int64(0), stats.Evictions)
		assert.Equal(t, int64(0), stats.ExpiredRemovals)
		assert.Equal(t, int64(1), stats.TotalRequests)
	})

	t.Run("clear preserves counters test", func(t *testing.T) {
		c := newCache(t, 3, time.Minute)

		c.Put("a", "1")
		c.Put("b", "2")
		c.Get("a")
		c.Get("x")

		c.Clear()
		assert.Equal(t, 0, c.Len())

		_, ok := c.Get("a")
		assert.False(t, ok)

		stats := c.Stats()
		assert.Equal(t, 0, stats.CurrentSize)
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(2), stats.Misses)
		assert.Equal(t, int64(3), stats.TotalRequests)
	})
}

func TestStats(t *testing.T) {
	t.Run("hit rate test", func(t *testing.T) {
		c := newCache(t, 2, time.Minute)

		stats := c.Stats()
		assert.Zero(t, stats.HitRate)
		assert.Zero(t, stats.TotalRequests)

		c.Put("a", "1")
		c.Get("a")
		c.Get("a")
		c.Get("b")

		stats = c.Stats()
		assert.Equal(t, int64(2), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(3), stats.TotalRequests)
		assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.0001)
	})

	t.Run("requests move only on get test", func(t *testing.T) {
		c := newCache(t, 2, time.Minute)

		c.Put("a", "1")
		c.Put("a", "2")
		c.Put("b", "3")
		c.Delete("b")
		c.Clear()

		assert.Zero(t, c.Stats().TotalRequests)

		c.Get("a")
		assert.Equal(t, int64(1), c.Stats().TotalRequests)
	})
}

func TestScenario(t *testing.T) {
	t.Run("demo walkthrough test", func(t *testing.T) {
		c, err := cache.New[int, int](cache.Options{
			Capacity:      3,
			DefaultTTL:    3 * time.Second,
			SweepInterval: time.Minute,
		})
		assert.NoError(t, err)
		defer c.Close()

		c.Put(1, 100)
		c.PutWithTTL(2, 200, 200*time.Millisecond)

		v, ok := c.Get(1)
		assert.True(t, ok)
		assert.Equal(t, 100, v)

		time.Sleep(250 * time.Millisecond)

		_, ok = c.Get(2)
		assert.False(t, ok)

		c.Put(3, 300)
		c.Put(4, 400)

		// Key 2 was already gone when 3 and 4 arrived, so the cache is
		// exactly full and nothing has been evicted yet.
		stats := c.Stats()
		assert.Equal(t, 3, stats.CurrentSize)
		assert.Equal(t, int64(0), stats.Evictions)

		// The next insertion evicts key 1: both 3 and 4 were inserted
		// after its last access.
		c.Put(5, 500)

		stats = c.Stats()
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(2), stats.TotalRequests)
		assert.InDelta(t, 0.5, stats.HitRate, 0.0001)
		assert.Equal(t, 3, stats.CurrentSize)
		assert.Equal(t, int64(1), stats.Evictions)
		assert.Equal(t, int64(1), stats.ExpiredRemovals)

		_, ok = c.Get(1)
		assert.False(t, ok)
		for _, key := range []int{3, 4, 5} {
			v, ok := c.Get(key)
			assert.True(t, ok)
			assert.Equal(t, key*100, v)
		}
	})
}
