// SPDX-License-Identifier: MIT

package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/renameio/v2"
)

// Report is the JSON summary of one analysis run.
type Report struct {
	JobID           string        `json:"jobId"`
	StartedAt       time.Time     `json:"startedAt"`
	FinishedAt      time.Time     `json:"finishedAt"`
	TotalComponents int           `json:"totalComponents"`
	Graphs          []GraphReport `json:"graphs"`
}

// GraphReport summarizes one analyzed graph.
type GraphReport struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Revision   uint64 `json:"revision"`
	Vertices   int    `json:"vertices"`
	Edges      int    `json:"edges"`
	Components int    `json:"components"`
	Largest    int    `json:"largestComponent"`
}

// writeReport writes the report atomically. Readers either see the previous
// complete report or the new one, never a partial file.
func writeReport(path string, report Report) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("jobs: create report: %w", err)
	}
	defer func() { _ = pf.Cleanup() }()

	enc := json.NewEncoder(pf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("jobs: encode report: %w", err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("jobs: replace report: %w", err)
	}
	return nil
}
