//go:build amd64

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
	gotime "time"

	"github.com/stretchr/testify/assert"
	monkey "github.com/undefinedlabs/go-mpatch"

	"github.com/yorkie-team/biscuit/pkg/cache"
)

func TestExpiryBoundary(t *testing.T) {
	t.Run("entry at its exact expiry instant is still valid test", func(t *testing.T) {
		c, err := cache.New[string, string](cache.Options{
			Capacity:      4,
			DefaultTTL:    gotime.Minute,
			SweepInterval: gotime.Minute,
		})
		assert.NoError(t, err)
		defer c.Close()

		base := gotime.Now()
		now := base
		patch, err := monkey.PatchMethod(gotime.Now, func() gotime.Time { return now })
		assert.NoError(t, err)
		defer func() {
			assert.NoError(t, patch.Unpatch())
		}()

		c.PutWithTTL("pi", "3.14", 10*gotime.Second)

		// Expired means strictly past the expiry instant, so the entry
		// is still served exactly at it.
		now = base.Add(10 * gotime.Second)
		v, ok := c.Get("pi")
		assert.True(t, ok)
		assert.Equal(t, "3.14", v)

		now = base.Add(10*gotime.Second + gotime.Nanosecond)
		_, ok = c.Get("pi")
		assert.False(t, ok)

		stats := c.Stats()
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(1), stats.ExpiredRemovals)
	})

	t.Run("expiry is fixed at put and never extended by get test", func(t *testing.T) {
		c, err := cache.New[string, string](cache.Options{
			Capacity:      4,
			DefaultTTL:    30 * gotime.Second,
			SweepInterval: gotime.Minute,
		})
		assert.NoError(t, err)
		defer c.Close()

		base := gotime.Now()
		now := base
		patch, err := monkey.PatchMethod(gotime.Now, func() gotime.Time { return now })
		assert.NoError(t, err)
		defer func() {
			assert.NoError(t, patch.Unpatch())
		}()

		c.Put("k", "v")

		// Repeated hits promote the entry but do not push its expiry
		// out.
		now = base.Add(20 * gotime.Second)
		_, ok := c.Get("k")
		assert.True(t, ok)

		now = base.Add(29 * gotime.Second)
		_, ok = c.Get("k")
		assert.True(t, ok)

		now = base.Add(31 * gotime.Second)
		_, ok = c.Get("k")
		assert.False(t, ok)
		assert.Equal(t, int64(1), c.Stats().ExpiredRemovals)
	})
}
