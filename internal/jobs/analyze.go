// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/padslib/pads/internal/cache"
	"github.com/padslib/pads/internal/graph"
	"github.com/padslib/pads/internal/log"
	"github.com/padslib/pads/internal/metrics"
	"github.com/padslib/pads/internal/store"
	"github.com/padslib/pads/internal/telemetry"
)

// Compute analyzes one graph record. The duration and component count are
// recorded as metrics.
func Compute(rec *store.GraphRecord) SCCResult {
	start := time.Now()
	g := graph.FromAdjacency(rec.Adjacency)
	comps := graph.StrongComponents(g)
	metrics.ObserveSCC(len(comps), time.Since(start).Seconds())

	return SCCResult{
		GraphID:    rec.ID,
		Revision:   rec.Revision,
		Vertices:   g.Order(),
		Edges:      g.Size(),
		Components: comps,
		ComputedAt: time.Now().UTC(),
	}
}

// runOnce scans every stored graph, computes its strong components, primes
// the cache and assembles the report. Graphs are analyzed concurrently up to
// the configured limit.
func (r *Runner) runOnce(ctx context.Context, jobID string) (Report, error) {
	ctx = log.ContextWithJobID(ctx, jobID)
	logger := log.WithComponentFromContext(ctx, "jobs")

	ctx, runSpan := telemetry.Tracer("pads.jobs").Start(ctx, "jobs.run")
	defer runSpan.End()

	report := Report{
		JobID:     jobID,
		StartedAt: time.Now().UTC(),
	}

	var recs []*store.GraphRecord
	err := r.opts.Store.Scan(ctx, func(rec *store.GraphRecord) error {
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		metrics.IncAnalysisFailure("scan")
		logger.Error().Err(err).
			Str("event", "jobs.stage_failed").
			Str(log.FieldStage, "scan").
			Msg("graph scan failed")
		return report, err
	}
	runSpan.SetAttributes(telemetry.JobAttributes(jobID, len(recs))...)

	var (
		mu      sync.Mutex
		entries []GraphReport
	)
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.opts.Concurrency)

	for _, rec := range recs {
		eg.Go(func() error {
			if r.limiter != nil {
				if err := r.limiter.Wait(egctx); err != nil {
					return err
				}
			}
			tracer := telemetry.Tracer("pads.jobs")
			_, span := tracer.Start(egctx, "jobs.analyze_graph")
			res := Compute(rec)
			span.SetAttributes(telemetry.GraphAttributes(rec.ID, res.Vertices, res.Edges, rec.Revision)...)
			span.End()

			r.opts.Cache.Set(cache.SCCKey(rec.ID, rec.Revision), res, r.opts.CacheTTL)

			largest := 0
			for _, c := range res.Components {
				if len(c) > largest {
					largest = len(c)
				}
			}
			mu.Lock()
			entries = append(entries, GraphReport{
				ID:         rec.ID,
				Name:       rec.Name,
				Revision:   rec.Revision,
				Vertices:   res.Vertices,
				Edges:      res.Edges,
				Components: len(res.Components),
				Largest:    largest,
			})
			mu.Unlock()

			logger.Debug().
				Str("event", "jobs.graph_analyzed").
				Str(log.FieldGraphID, rec.ID).
				Int(log.FieldVertices, res.Vertices).
				Int(log.FieldEdges, res.Edges).
				Int(log.FieldComponents, len(res.Components)).
				Msg("graph analyzed")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		metrics.IncAnalysisFailure("compute")
		logger.Error().Err(err).
			Str("event", "jobs.stage_failed").
			Str(log.FieldStage, "compute").
			Msg("graph analysis failed")
		return report, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	report.Graphs = entries
	for _, e := range entries {
		report.TotalComponents += e.Components
	}
	report.FinishedAt = time.Now().UTC()

	metrics.RecordGraphCount(len(entries))
	return report, nil
}
