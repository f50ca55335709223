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
	"errors"
	"time"

	"github.com/yorkie-team/biscuit/profiling/prometheus"
)

const (
	// DefaultSweepInterval is the period between two passes of the
	// background sweeper.
	DefaultSweepInterval = time.Second

	// DefaultName is the name used for a cache that is not given one.
	DefaultName = "cache"
)

var (
	// ErrInvalidCapacity is returned when the given capacity is not positive.
	ErrInvalidCapacity = errors.New("capacity must be > 0")

	// ErrInvalidTTL is returned when the given default TTL is not positive.
	ErrInvalidTTL = errors.New("default TTL must be > 0")
)

// Options configures a Cache.
type Options struct {
	// Capacity is the maximum number of entries the cache holds. Once it
	// is reached, inserting a new key evicts the least recently used
	// entry.
	Capacity int

	// DefaultTTL is the time-to-live applied by Put. PutWithTTL
	// overrides it per entry.
	DefaultTTL time.Duration

	// SweepInterval is the period between two background passes that
	// remove expired entries. A non-positive value selects
	// DefaultSweepInterval.
	SweepInterval time.Duration

	// Name identifies the cache in logs and metrics.
	Name string

	// Metrics receives the usage counters of the cache. It may be nil.
	Metrics *prometheus.Metrics
}

// ensureDefaultValue fills the optional fields with their default values.
func (o *Options) ensureDefaultValue() {
	if o.SweepInterval <= 0 {
		o.SweepInterval = DefaultSweepInterval
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
}

// Validate validates the given options.
func (o *Options) Validate() error {
	if o.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if o.DefaultTTL <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
