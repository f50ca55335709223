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

// Package main is the entry point of the biscuit CLI.
package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yorkie-team/biscuit/pkg/cache"
)

var rootCmd = &cobra.Command{
	Use:   "biscuit",
	Short: "In-memory key/value cache with LRU eviction and per-entry TTL",
}

// Run executes CLI.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}

// renderStats renders a statistics snapshot of the given cache as a table.
func renderStats(name string, capacity int, stats cache.Stats) string {
	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	tw.AppendHeader(table.Row{
		"CACHE",
		"SIZE",
		"CAPACITY",
		"HITS",
		"MISSES",
		"REQUESTS",
		"HIT RATE",
		"EVICTIONS",
		"EXPIRED",
	})
	tw.AppendRow(table.Row{
		name,
		stats.CurrentSize,
		capacity,
		stats.Hits,
		stats.Misses,
		stats.TotalRequests,
		fmt.Sprintf("%.2f%%", stats.HitRate*100),
		stats.Evictions,
		stats.ExpiredRemovals,
	})

	return tw.Render()
}
