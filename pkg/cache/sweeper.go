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

import (
	"time"

	"go.uber.org/zap"

	"github.com/yorkie-team/biscuit/logging"
)

// runSweeper removes expired entries on every tick until the cache is
// closed. It runs on its own goroutine started by New.
func (c *Cache[K, V]) runSweeper() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep scans the whole index once and removes every entry whose TTL
// has passed.
func (c *Cache[K, V]) sweep() {
	start := time.Now()

	c.lock.Lock()
	scanned := len(c.index)
	now := time.Now()
	removed := 0
	for key, h := range c.index {
		if now.After(c.entries.Value(h).expiresAt) {
			c.entries.Remove(h)
			delete(c.index, key)
			c.stats.expiredRemovals++
			removed++
		}
	}
	size := len(c.index)
	c.lock.Unlock()

	if c.metrics != nil {
		if removed > 0 {
			c.metrics.AddCacheExpiredRemovals(c.name, removed)
		}
		c.metrics.SetCacheEntries(c.name, size)
		c.metrics.ObserveSweepDurationSeconds(c.name, time.Since(start).Seconds())
	}

	if removed > 0 {
		c.logger.Infof("SWEP: scanned %d, removed %d, %s", scanned, removed, time.Since(start))
	} else if logging.Enabled(zap.DebugLevel) {
		c.logger.Debugf("SWEP: scanned %d, removed 0, %s", scanned, time.Since(start))
	}
}

// Close stops the background sweeper and waits for it to exit. The
// cache stays usable afterwards; expired entries are still removed
// lazily on access. Close is idempotent.
func (c *Cache[K, V]) Close() {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return
	}
	c.closed = true
	c.lock.Unlock()

	c.cancel()
	c.wg.Wait()
}
