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

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/xid"
	"github.com/spf13/cobra"

	"github.com/yorkie-team/biscuit/cmd/biscuit/config"
	"github.com/yorkie-team/biscuit/logging"
	"github.com/yorkie-team/biscuit/pkg/cache"
	"github.com/yorkie-team/biscuit/profiling"
	"github.com/yorkie-team/biscuit/profiling/prometheus"
)

var (
	gracefulTimeout = 10 * time.Second
)

var (
	flagConfPath string
	flagLogLevel string

	benchDefaultTTL    time.Duration
	benchSweepInterval time.Duration
	benchStatsInterval time.Duration

	benchDuration    time.Duration
	benchWorkers     int
	benchKeyspace    int
	benchReadPercent int

	benchConf = config.NewConfig()
)

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench [options]",
		Short: "Run a concurrent workload against a cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			benchConf.Cache.DefaultTTL = benchDefaultTTL.String()
			benchConf.Cache.SweepInterval = benchSweepInterval.String()

			// If config file is given, command-line arguments will be overwritten.
			if flagConfPath != "" {
				parsed, err := config.NewFromFile(flagConfPath)
				if err != nil {
					return err
				}
				benchConf = parsed
			}

			if err := logging.SetLogLevel(flagLogLevel); err != nil {
				return err
			}

			if err := benchConf.Validate(); err != nil {
				return err
			}
			if benchWorkers <= 0 || benchKeyspace <= 0 {
				return errors.New("workers and keyspace must be > 0")
			}
			if benchReadPercent < 0 || benchReadPercent > 100 {
				return errors.New("read-percent must be between 0 and 100")
			}

			metrics, err := prometheus.NewMetrics()
			if err != nil {
				return err
			}

			c, err := cache.New[string, int64](cache.Options{
				Capacity:      benchConf.Cache.Capacity,
				DefaultTTL:    benchConf.Cache.ParseDefaultTTL(),
				SweepInterval: benchConf.Cache.ParseSweepInterval(),
				Name:          benchConf.Cache.Name,
				Metrics:       metrics,
			})
			if err != nil {
				return err
			}
			defer c.Close()

			profilingServer := profiling.NewServer(benchConf.Profiling, metrics)
			if err := profilingServer.Start(); err != nil {
				return err
			}
			defer profilingServer.Shutdown(true)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			manager := cache.NewManager(benchStatsInterval)
			manager.RegisterCache(c)
			go manager.StartPeriodicLogging(ctx)

			logging.DefaultLogger().Infof(
				"bench started: ID: %s, cache: %s, capacity: %d, workers: %d, keyspace: %d, reads: %d%%",
				xid.New().String(),
				c.Name(),
				c.Capacity(),
				benchWorkers,
				benchKeyspace,
				benchReadPercent,
			)

			wg := sync.WaitGroup{}
			for i := 0; i < benchWorkers; i++ {
				wg.Add(1)
				go func(seed int64) {
					defer wg.Done()
					runWorker(ctx, c, seed)
				}(int64(i))
			}

			if code := handleBenchSignal(cancel, &wg); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			cmd.Printf("%s\n", renderStats(c.Name(), c.Capacity(), c.Stats()))
			return nil
		},
	}
}

// runWorker issues random gets and puts over a bounded keyspace until
// the context is done.
func runWorker(ctx context.Context, c *cache.Cache[string, int64], seed int64) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + seed))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		key := fmt.Sprintf("key-%d", rng.Intn(benchKeyspace))
		if rng.Intn(100) < benchReadPercent {
			c.Get(key)
			continue
		}
		c.Put(key, rng.Int63())
	}
}

func handleBenchSignal(cancel context.CancelFunc, wg *sync.WaitGroup) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case <-sigCh:
	case <-time.After(benchDuration):
	}

	cancel()

	gracefulCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(gracefulCh)
	}()

	select {
	case <-sigCh:
		return 1
	case <-time.After(gracefulTimeout):
		return 1
	case <-gracefulCh:
		return 0
	}
}

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().StringVar(
		&benchConf.Cache.Name,
		"name",
		config.DefaultCacheName,
		"Cache name used in logs and metrics",
	)
	cmd.Flags().IntVar(
		&benchConf.Cache.Capacity,
		"capacity",
		config.DefaultCapacity,
		"Maximum number of entries the cache holds",
	)
	cmd.Flags().DurationVar(
		&benchDefaultTTL,
		"default-ttl",
		config.DefaultTTL,
		"Time-to-live applied to entries stored without an explicit one",
	)
	cmd.Flags().DurationVar(
		&benchSweepInterval,
		"sweep-interval",
		config.DefaultSweepInterval,
		"Period between two passes of the background sweeper",
	)
	cmd.Flags().IntVar(
		&benchConf.Profiling.Port,
		"profiling-port",
		config.DefaultProfilingPort,
		"Profiling port",
	)
	cmd.Flags().BoolVar(
		&benchConf.Profiling.EnablePprof,
		"enable-pprof",
		false,
		"Enable runtime profiling data via HTTP server.",
	)
	cmd.Flags().DurationVar(
		&benchDuration,
		"duration",
		30*time.Second,
		"How long the workload runs",
	)
	cmd.Flags().IntVar(
		&benchWorkers,
		"workers",
		8,
		"Number of concurrent workers",
	)
	cmd.Flags().IntVar(
		&benchKeyspace,
		"keyspace",
		10000,
		"Number of distinct keys the workload touches",
	)
	cmd.Flags().IntVar(
		&benchReadPercent,
		"read-percent",
		80,
		"Percentage of operations that are reads",
	)
	cmd.Flags().DurationVar(
		&benchStatsInterval,
		"stats-interval",
		config.DefaultStatsInterval,
		"Period between two statistics log lines",
	)

	rootCmd.AddCommand(cmd)
}
