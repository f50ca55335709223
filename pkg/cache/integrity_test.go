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
	"crypto/rand"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/biscuit/pkg/ring"
)

func randomIntn(n int) int {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return int(binary.LittleEndian.Uint64(b) % uint64(n))
}

// checkIntegrity verifies that the index and the recency ring reference
// exactly the same entries, in both directions.
func checkIntegrity(t *testing.T, c *Cache[int, int]) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	assert.Equal(t, len(c.index), c.entries.Len())
	assert.LessOrEqual(t, len(c.index), c.capacity)

	walked := 0
	for h := c.entries.Front(); h != ring.Nil; h = c.entries.Next(h) {
		ent := c.entries.Value(h)
		indexed, ok := c.index[ent.key]
		assert.True(t, ok)
		assert.Equal(t, h, indexed)
		walked++
	}
	assert.Equal(t, len(c.index), walked)
}

func TestIntegrity(t *testing.T) {
	t.Run("bijection after mixed operations test", func(t *testing.T) {
		c, err := New[int, int](Options{
			Capacity:      8,
			DefaultTTL:    time.Minute,
			SweepInterval: time.Minute,
		})
		assert.NoError(t, err)
		defer c.Close()

		for i := 0; i < 20; i++ {
			c.Put(i, i*10)
		}
		checkIntegrity(t, c)

		for i := 10; i < 16; i++ {
			_, _ = c.Get(i)
		}
		checkIntegrity(t, c)

		c.Delete(18)
		c.Delete(19)
		c.Put(14, 999)
		checkIntegrity(t, c)

		c.PutWithTTL(100, 1, 0)
		_, _ = c.Get(100)
		checkIntegrity(t, c)

		c.Clear()
		checkIntegrity(t, c)

		for i := 0; i < 5; i++ {
			c.Put(i, i)
		}
		checkIntegrity(t, c)
	})
}

func TestConcurrentCache(t *testing.T) {
	t.Run("concurrent access test", func(t *testing.T) {
		c, err := New[int, int](Options{
			Capacity:      128,
			DefaultTTL:    time.Minute,
			SweepInterval: 5 * time.Millisecond,
		})
		assert.NoError(t, err)
		defer c.Close()

		const numRoutines = 50
		const numOperations = 2000

		var wg sync.WaitGroup
		wg.Add(numRoutines)

		for i := 0; i < numRoutines; i++ {
			go func(routineID int) {
				defer wg.Done()
				for j := 0; j < numOperations; j++ {
					key := randomIntn(512)
					value := routineID*numOperations + j

					switch randomIntn(6) {
					case 0, 1: // Put
						c.Put(key, value)
					case 2: // PutWithTTL, sometimes born expired
						ttl := time.Duration(randomIntn(10)-2) * time.Millisecond
						c.PutWithTTL(key, value, ttl)
					case 3, 4: // Get
						_, _ = c.Get(key)
					case 5: // Delete
						c.Delete(key)
					}
				}
			}(i)
		}

		// Walk the structure while the storm is running.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 50; i++ {
				checkIntegrity(t, c)
				time.Sleep(time.Millisecond)
			}
		}()

		wg.Wait()
		<-done

		checkIntegrity(t, c)
		assert.LessOrEqual(t, c.Len(), 128)

		stats := c.Stats()
		assert.Equal(t, stats.TotalRequests, stats.Hits+stats.Misses)
	})

	t.Run("concurrent stats snapshots test", func(t *testing.T) {
		c, err := New[int, int](Options{
			Capacity:      64,
			DefaultTTL:    time.Minute,
			SweepInterval: 10 * time.Millisecond,
		})
		assert.NoError(t, err)
		defer c.Close()

		const numWriters = 10
		const numReaders = 5
		const numOperations = 1000

		var wg sync.WaitGroup
		wg.Add(numWriters + numReaders)

		for i := 0; i < numWriters; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < numOperations; j++ {
					key := randomIntn(256)
					if randomIntn(2) == 0 {
						c.Put(key, j)
					} else {
						_, _ = c.Get(key)
					}
				}
			}()
		}

		for i := 0; i < numReaders; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < numOperations; j++ {
					// Every snapshot must be internally consistent no
					// matter how the writers interleave.
					stats := c.Stats()
					assert.Equal(t, stats.TotalRequests, stats.Hits+stats.Misses)
					assert.GreaterOrEqual(t, stats.HitRate, 0.0)
					assert.LessOrEqual(t, stats.HitRate, 1.0)
					assert.LessOrEqual(t, stats.CurrentSize, 64)
				}
			}()
		}

		wg.Wait()
	})
}
