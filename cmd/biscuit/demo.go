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
	"time"

	"github.com/spf13/cobra"

	"github.com/yorkie-team/biscuit/cmd/biscuit/config"
	"github.com/yorkie-team/biscuit/logging"
	"github.com/yorkie-team/biscuit/pkg/cache"
)

var (
	demoConfPath string
	demoLogLevel string

	demoCapacity      = 3
	demoDefaultTTL    = 3 * time.Second
	demoSweepInterval = time.Second
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a short walkthrough of puts, gets, expiry and eviction",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.NewConfig()
			conf.Cache.Capacity = demoCapacity
			conf.Cache.DefaultTTL = demoDefaultTTL.String()
			conf.Cache.SweepInterval = demoSweepInterval.String()

			// If config file is given, command-line arguments will be overwritten.
			if demoConfPath != "" {
				parsed, err := config.NewFromFile(demoConfPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			if err := logging.SetLogLevel(demoLogLevel); err != nil {
				return err
			}

			if err := conf.Validate(); err != nil {
				return err
			}

			c, err := cache.New[int, int](cache.Options{
				Capacity:      conf.Cache.Capacity,
				DefaultTTL:    conf.Cache.ParseDefaultTTL(),
				SweepInterval: conf.Cache.ParseSweepInterval(),
				Name:          conf.Cache.Name,
			})
			if err != nil {
				return err
			}
			defer c.Close()

			ttl := conf.Cache.ParseDefaultTTL()
			shortTTL := ttl * 2 / 3
			wait := shortTTL + ttl/6

			c.Put(1, 100)
			cmd.Printf("PUT 1 -> 100 (ttl %s)\n", ttl)

			c.PutWithTTL(2, 200, shortTTL)
			cmd.Printf("PUT 2 -> 200 (ttl %s)\n", shortTTL)

			demoGet(cmd, c, 1)

			cmd.Printf("sleeping %s so that key 2 expires...\n", wait)
			time.Sleep(wait)

			demoGet(cmd, c, 2)

			key := 3
			for ; c.Len() < c.Capacity(); key++ {
				c.Put(key, key*100)
				cmd.Printf("PUT %d -> %d (ttl %s)\n", key, key*100, ttl)
			}

			// The cache is full now, so one more put evicts the least
			// recently used entry.
			c.Put(key, key*100)
			cmd.Printf("PUT %d -> %d (ttl %s)\n", key, key*100, ttl)

			demoGet(cmd, c, 1)

			cmd.Printf("\n%s\n", renderStats(c.Name(), c.Capacity(), c.Stats()))
			return nil
		},
	}
}

func demoGet(cmd *cobra.Command, c *cache.Cache[int, int], key int) {
	if value, ok := c.Get(key); ok {
		cmd.Printf("GET %d -> %d\n", key, value)
		return
	}
	cmd.Printf("GET %d -> miss\n", key)
}

func init() {
	cmd := newDemoCmd()
	cmd.Flags().StringVarP(
		&demoConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&demoLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().IntVar(
		&demoCapacity,
		"capacity",
		demoCapacity,
		"Maximum number of entries the cache holds",
	)
	cmd.Flags().DurationVar(
		&demoDefaultTTL,
		"default-ttl",
		demoDefaultTTL,
		"Time-to-live applied to entries stored without an explicit one",
	)
	cmd.Flags().DurationVar(
		&demoSweepInterval,
		"sweep-interval",
		demoSweepInterval,
		"Period between two passes of the background sweeper",
	)

	rootCmd.AddCommand(cmd)
}
