// SPDX-License-Identifier: MIT

// Package jobs runs the background analysis that computes strong components
// for every stored graph, refreshes the cache, writes the summary report and
// records the run in history.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/padslib/pads/internal/cache"
	"github.com/padslib/pads/internal/history"
	"github.com/padslib/pads/internal/store"
)

// ErrBusy is returned by Trigger while a run is already in progress.
var ErrBusy = errors.New("jobs: analysis already running")

// GraphScanner is the slice of the store the runner needs.
type GraphScanner interface {
	Scan(ctx context.Context, fn func(*store.GraphRecord) error) error
}

// Options configures a Runner.
type Options struct {
	Store   GraphScanner
	History *history.DB
	Cache   cache.Cache

	// Interval between periodic runs. Zero disables the ticker; runs then
	// only happen through Trigger.
	Interval time.Duration
	// Concurrency bounds the number of graphs analyzed in parallel.
	Concurrency int
	// Rate throttles graph analyses per second. Zero means unthrottled.
	Rate float64
	// CacheTTL is the lifetime of cached component results.
	CacheTTL time.Duration
	// ReportPath is where the JSON summary report is written.
	ReportPath string
}

// Status is a snapshot of the runner state.
type Status struct {
	Running        bool          `json:"running"`
	LastRun        time.Time     `json:"lastRun,omitzero"`
	LastError      string        `json:"lastError,omitempty"`
	LastGraphs     int           `json:"lastGraphs"`
	LastComponents int           `json:"lastComponents"`
	LastDuration   time.Duration `json:"lastDurationNs"`
}

// SCCResult is the cached analysis result for one graph at one revision.
type SCCResult struct {
	GraphID    string     `json:"graphId"`
	Revision   uint64     `json:"revision"`
	Vertices   int        `json:"vertices"`
	Edges      int        `json:"edges"`
	Components [][]string `json:"components"`
	ComputedAt time.Time  `json:"computedAt"`
}

// DecodeSCC recovers an SCCResult from a cache value. Values from the
// in-memory cache keep their concrete type; values from Redis come back as
// generic JSON and are re-decoded.
func DecodeSCC(v any) (SCCResult, bool) {
	if r, ok := v.(SCCResult); ok {
		return r, true
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return SCCResult{}, false
	}
	var r SCCResult
	if err := json.Unmarshal(raw, &r); err != nil || r.GraphID == "" {
		return SCCResult{}, false
	}
	return r, true
}
