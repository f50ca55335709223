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

package cache

// Stats is a point-in-time snapshot of the usage counters of a cache.
// All fields are taken in a single critical section, so they are
// consistent with each other.
type Stats struct {
	// Hits is the number of lookups that returned a live entry.
	Hits int64

	// Misses is the number of lookups that found no entry or an expired
	// one.
	Misses int64

	// HitRate is Hits divided by TotalRequests, or zero when nothing has
	// been looked up yet. It is computed when the snapshot is taken and
	// never stored.
	HitRate float64

	// TotalRequests is the number of lookups. Only Get moves it; writes
	// and deletes do not.
	TotalRequests int64

	// CurrentSize is the number of entries held at snapshot time,
	// including expired entries that have not been removed yet.
	CurrentSize int

	// Evictions is the number of entries removed by capacity pressure.
	Evictions int64

	// ExpiredRemovals is the number of entries removed because their TTL
	// had passed, whether on access or by the sweeper.
	ExpiredRemovals int64
}

// counters accumulates the usage numbers of a cache. It is guarded by
// the lock of the owning cache, not by atomics, so that a snapshot of
// all fields is consistent.
type counters struct {
	hits            int64
	misses          int64
	totalRequests   int64
	evictions       int64
	expiredRemovals int64
}

// snapshot builds a Stats from the current counter values. The caller
// must hold at least the read lock of the owning cache.
func (c *counters) snapshot(size int) Stats {
	stats := Stats{
		Hits:            c.hits,
		Misses:          c.misses,
		TotalRequests:   c.totalRequests,
		CurrentSize:     size,
		Evictions:       c.evictions,
		ExpiredRemovals: c.expiredRemovals,
	}
	if c.totalRequests > 0 {
		stats.HitRate = float64(c.hits) / float64(c.totalRequests)
	}
	return stats
}
