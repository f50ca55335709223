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

// Package config provides the configuration of the biscuit CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/biscuit/internal/validation"
	"github.com/yorkie-team/biscuit/profiling"
)

// Below are the values of the default values of biscuit config.
const (
	DefaultCacheName     = "biscuit"
	DefaultCapacity      = 1000
	DefaultTTL           = time.Minute
	DefaultSweepInterval = time.Second

	DefaultProfilingPort = 8081

	DefaultStatsInterval = 10 * time.Second
)

// Cache is the configuration for the cache the CLI creates.
type Cache struct {
	// Name identifies the cache in logs and metrics.
	Name string `yaml:"Name" validate:"required,slug"`

	// Capacity is the maximum number of entries the cache holds. Once it
	// is reached, inserting a new key evicts the least recently used
	// entry.
	Capacity int `yaml:"Capacity" validate:"gt=0"`

	// DefaultTTL is the time-to-live applied to entries stored without an
	// explicit one.
	DefaultTTL string `yaml:"DefaultTTL" validate:"required,duration"`

	// SweepInterval is the period between two passes of the background
	// sweeper.
	SweepInterval string `yaml:"SweepInterval" validate:"required,duration"`
}

// Config is the configuration for creating a cache from the CLI.
type Config struct {
	Cache     *Cache            `yaml:"Cache"`
	Profiling *profiling.Config `yaml:"Profiling"`
}

// NewConfig returns a Config struct that contains reasonable defaults
// for most of the configurations.
func NewConfig() *Config {
	conf := &Config{}
	conf.ensureDefaultValue()
	return conf
}

// NewFromFile returns a Config struct for the given conf file.
func NewFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err = yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c.Cache); err != nil {
		return fmt.Errorf("validate cache config: %w", err)
	}

	return c.Profiling.Validate()
}

// ensureDefaultValue sets the value of the option to which the default
// value should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Profiling == nil {
		c.Profiling = &profiling.Config{}
	}

	if c.Cache.Name == "" {
		c.Cache.Name = DefaultCacheName
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = DefaultCapacity
	}
	if c.Cache.DefaultTTL == "" {
		c.Cache.DefaultTTL = DefaultTTL.String()
	}
	if c.Cache.SweepInterval == "" {
		c.Cache.SweepInterval = DefaultSweepInterval.String()
	}

	if c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}
}

// ParseDefaultTTL returns DefaultTTL as a time.Duration.
func (c *Cache) ParseDefaultTTL() time.Duration {
	result, err := time.ParseDuration(c.DefaultTTL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse default ttl: %w", err)
		os.Exit(1)
	}

	return result
}

// ParseSweepInterval returns SweepInterval as a time.Duration.
func (c *Cache) ParseSweepInterval() time.Duration {
	result, err := time.ParseDuration(c.SweepInterval)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse sweep interval: %w", err)
		os.Exit(1)
	}

	return result
}
