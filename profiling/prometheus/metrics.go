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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yorkie-team/biscuit/internal/version"
)

const (
	namespace  = "biscuit"
	cacheLabel = "cache"
)

// Metrics manages the metric information that Biscuit is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	biscuitVersion *prometheus.GaugeVec

	cacheHitsTotal            *prometheus.CounterVec
	cacheMissesTotal          *prometheus.CounterVec
	cacheEvictionsTotal       *prometheus.CounterVec
	cacheExpiredRemovalsTotal *prometheus.CounterVec
	cacheEntriesTotal         *prometheus.GaugeVec

	sweepDurationSeconds *prometheus.HistogramVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		biscuitVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "version",
			Help:      "Which version is running. 1 for 'version' label with current version.",
		}, []string{"version"}),
		cacheHitsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "The total number of lookups that found a live entry.",
		}, []string{cacheLabel}),
		cacheMissesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "The total number of lookups that found no entry or an expired one.",
		}, []string{cacheLabel}),
		cacheEvictionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "The total number of entries evicted by capacity pressure.",
		}, []string{cacheLabel}),
		cacheExpiredRemovalsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "expired_removals_total",
			Help:      "The total number of entries removed because their TTL had passed.",
		}, []string{cacheLabel}),
		cacheEntriesTotal: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries_total",
			Help:      "The current number of entries held by a particular cache.",
		}, []string{cacheLabel}),
		sweepDurationSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "The time spent by a single pass of the expired entry sweeper.",
		}, []string{cacheLabel}),
	}

	metrics.biscuitVersion.With(prometheus.Labels{
		"version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddCacheHit adds the number of lookups that found a live entry.
func (m *Metrics) AddCacheHit(cache string) {
	m.cacheHitsTotal.With(prometheus.Labels{
		cacheLabel: cache,
	}).Inc()
}

// AddCacheMiss adds the number of lookups that found nothing usable.
func (m *Metrics) AddCacheMiss(cache string) {
	m.cacheMissesTotal.With(prometheus.Labels{
		cacheLabel: cache,
	}).Inc()
}

// AddCacheEviction adds the number of entries evicted by capacity pressure.
func (m *Metrics) AddCacheEviction(cache string) {
	m.cacheEvictionsTotal.With(prometheus.Labels{
		cacheLabel: cache,
	}).Inc()
}

// AddCacheExpiredRemovals adds the number of entries removed because their
// TTL had passed.
func (m *Metrics) AddCacheExpiredRemovals(cache string, count int) {
	m.cacheExpiredRemovalsTotal.With(prometheus.Labels{
		cacheLabel: cache,
	}).Add(float64(count))
}

// SetCacheEntries sets the current number of entries held by a particular cache.
func (m *Metrics) SetCacheEntries(cache string, count int) {
	m.cacheEntriesTotal.With(prometheus.Labels{
		cacheLabel: cache,
	}).Set(float64(count))
}

// ObserveSweepDurationSeconds adds an observation for a single pass of the
// expired entry sweeper.
func (m *Metrics) ObserveSweepDurationSeconds(cache string, seconds float64) {
	m.sweepDurationSeconds.With(prometheus.Labels{
		cacheLabel: cache,
	}).Observe(seconds)
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
