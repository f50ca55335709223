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

// Package cache provides a bounded in-memory key/value cache with LRU
// eviction, per-entry TTL expiration, a background sweeper for expired
// entries and usage statistics.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/yorkie-team/biscuit/logging"
	"github.com/yorkie-team/biscuit/pkg/ring"
	"github.com/yorkie-team/biscuit/profiling/prometheus"
)

// entry is the unit stored in a Cache: the key it is indexed under, the
// cached value and the absolute expiry time fixed by the put that
// created it.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// Cache is a bounded key/value cache. Entries are dropped by capacity
// pressure in least-recently-used order, by their TTL passing, or by
// explicit removal. A lookup refreshes the recency of its entry, so
// reads and writes alike take the lock exclusively; only the Stats and
// Len snapshots share it.
type Cache[K comparable, V any] struct {
	// lock guards the index, the recency ring and the counters as one
	// unit.
	lock sync.RWMutex

	capacity      int
	defaultTTL    time.Duration
	sweepInterval time.Duration
	name          string

	// index and entries reference the same logical collection: every
	// key in index maps to exactly one handle in entries and every
	// entry in entries is indexed under its key.
	index   map[K]ring.Handle
	entries *ring.Ring[entry[K, V]]

	stats counters

	metrics *prometheus.Metrics
	logger  logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// New creates a Cache configured by the given options and starts its
// background sweeper.
func New[K comparable, V any](opts Options) (*Cache[K, V], error) {
	opts.ensureDefaultValue()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache[K, V]{
		capacity:      opts.Capacity,
		defaultTTL:    opts.DefaultTTL,
		sweepInterval: opts.SweepInterval,
		name:          opts.Name,
		index:         make(map[K]ring.Handle, opts.Capacity),
		entries:       ring.New[entry[K, V]](opts.Capacity),
		metrics:       opts.Metrics,
		logger:        logging.New("cache", logging.NewField("cache", opts.Name)),
		ctx:           ctx,
		cancel:        cancel,
	}

	c.wg.Add(1)
	go c.runSweeper()

	return c, nil
}

// Put stores the given value under the given key with the default TTL
// of the cache.
func (c *Cache[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, c.defaultTTL)
}

// PutWithTTL stores the given value under the given key with its own
// TTL. A TTL less than or equal to zero stores an entry that is already
// expired.
func (c *Cache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if h, ok := c.index[key]; ok {
		// A put on a present key discards the old entry entirely;
		// neither its value nor its expiry survives.
		c.entries.Remove(h)
		delete(c.index, key)
	} else if len(c.index) >= c.capacity {
		c.evictOldest()
	}

	h := c.entries.PushFront(entry[K, V]{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	c.index[key] = h

	if c.metrics != nil {
		c.metrics.SetCacheEntries(c.name, len(c.index))
	}
}

// Get returns the value stored under the given key and refreshes the
// recency of its entry. The second return value is false if the key is
// absent or its entry has expired; an expired entry is removed on the
// spot.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	var nilV V

	c.stats.totalRequests++

	h, ok := c.index[key]
	if !ok {
		c.miss()
		return nilV, false
	}

	ent := c.entries.Value(h)
	if time.Now().After(ent.expiresAt) {
		c.entries.Remove(h)
		delete(c.index, key)
		c.stats.expiredRemovals++
		if c.metrics != nil {
			c.metrics.AddCacheExpiredRemovals(c.name, 1)
			c.metrics.SetCacheEntries(c.name, len(c.index))
		}
		c.miss()
		return nilV, false
	}

	c.entries.MoveToFront(h)
	c.stats.hits++
	if c.metrics != nil {
		c.metrics.AddCacheHit(c.name)
	}
	return ent.value, true
}

// Delete removes the entry stored under the given key. Deleting an
// absent key is a no-op.
func (c *Cache[K, V]) Delete(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	h, ok := c.index[key]
	if !ok {
		return
	}

	c.entries.Remove(h)
	delete(c.index, key)
	if c.metrics != nil {
		c.metrics.SetCacheEntries(c.name, len(c.index))
	}
}

// Clear removes every entry at once. The usage counters are kept; they
// describe the whole lifetime of the cache, not its current contents.
func (c *Cache[K, V]) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.index = make(map[K]ring.Handle, c.capacity)
	c.entries.Clear()
	if c.metrics != nil {
		c.metrics.SetCacheEntries(c.name, 0)
	}
}

// Stats returns a consistent snapshot of the usage counters.
func (c *Cache[K, V]) Stats() Stats {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.stats.snapshot(len(c.index))
}

// Len returns the number of entries currently held, including expired
// entries that have not been removed yet.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return len(c.index)
}

// Name returns the name of the cache.
func (c *Cache[K, V]) Name() string {
	return c.name
}

// Capacity returns the maximum number of entries the cache holds.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// evictOldest removes the least recently used entry. The caller must
// hold the lock.
func (c *Cache[K, V]) evictOldest() {
	oldest := c.entries.Back()
	if oldest == ring.Nil {
		return
	}

	victim := c.entries.Remove(oldest)
	delete(c.index, victim.key)
	c.stats.evictions++
	if c.metrics != nil {
		c.metrics.AddCacheEviction(c.name)
	}
}

// miss counts a lookup that returned nothing usable. The caller must
// hold the lock.
func (c *Cache[K, V]) miss() {
	c.stats.misses++
	if c.metrics != nil {
		c.metrics.AddCacheMiss(c.name)
	}
}
