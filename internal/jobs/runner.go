// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/padslib/pads/internal/history"
	"github.com/padslib/pads/internal/log"
	"github.com/padslib/pads/internal/metrics"
)

// Runner owns the background analysis. At most one run is in flight at a
// time; overlapping triggers are rejected with ErrBusy.
type Runner struct {
	opts    Options
	limiter *rate.Limiter

	running atomic.Bool
	wg      sync.WaitGroup

	mu     sync.Mutex
	status Status
}

// New creates a runner. It does not start anything.
func New(opts Options) *Runner {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	r := &Runner{opts: opts}
	if opts.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}
	return r
}

// Start launches the periodic loop when an interval is configured. The loop
// stops when ctx is canceled; Wait blocks until it has stopped.
func (r *Runner) Start(ctx context.Context) {
	if r.opts.Interval <= 0 {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.opts.Interval)
		defer ticker.Stop()

		logger := log.WithComponent("jobs")
		logger.Info().
			Str("event", "jobs.loop_started").
			Dur("interval", r.opts.Interval).
			Msg("periodic analysis started")

		for {
			select {
			case <-ticker.C:
				if _, err := r.Trigger(ctx); err != nil {
					logger.Warn().Err(err).
						Str("event", "jobs.tick_skipped").
						Msg("periodic run skipped")
				}
			case <-ctx.Done():
				logger.Info().
					Str("event", "jobs.loop_stopped").
					Msg("periodic analysis stopped")
				return
			}
		}
	}()
}

// Wait blocks until the periodic loop has exited.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Trigger starts one analysis run and blocks until it completes, returning
// the job id. ErrBusy is returned when a run is already in flight.
func (r *Runner) Trigger(ctx context.Context) (string, error) {
	if !r.running.CompareAndSwap(false, true) {
		metrics.IncAnalysisRun("busy")
		return "", ErrBusy
	}
	defer r.running.Store(false)

	jobID := uuid.New().String()
	return jobID, r.run(ctx, jobID)
}

// TriggerAsync reserves the runner and performs the run in a background
// goroutine, returning the job id immediately. The run survives cancellation
// of the caller's context.
func (r *Runner) TriggerAsync(ctx context.Context) (string, error) {
	if !r.running.CompareAndSwap(false, true) {
		metrics.IncAnalysisRun("busy")
		return "", ErrBusy
	}
	jobID := uuid.New().String()
	ctx = context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.running.Store(false)
		_ = r.run(ctx, jobID)
	}()
	return jobID, nil
}

func (r *Runner) run(ctx context.Context, jobID string) error {
	logger := log.WithComponent("jobs")
	start := time.Now()

	r.mu.Lock()
	r.status.Running = true
	r.mu.Unlock()

	report, err := r.runOnce(ctx, jobID)
	duration := time.Since(start)

	run := history.Run{
		ID:         jobID,
		StartedAt:  report.StartedAt,
		FinishedAt: time.Now().UTC(),
		Graphs:     len(report.Graphs),
		Components: report.TotalComponents,
		Outcome:    history.OutcomeSuccess,
	}

	if err == nil && r.opts.ReportPath != "" {
		if werr := writeReport(r.opts.ReportPath, report); werr != nil {
			metrics.IncAnalysisFailure("report")
			logger.Error().Err(werr).
				Str("event", "jobs.stage_failed").
				Str(log.FieldStage, "report").
				Str(log.FieldJobID, jobID).
				Msg("report write failed")
			err = werr
		}
	}
	if err != nil {
		run.Outcome = history.OutcomeFailure
		run.Error = err.Error()
	}

	if r.opts.History != nil {
		if herr := r.opts.History.Record(ctx, run); herr != nil {
			metrics.IncAnalysisFailure("history")
			logger.Error().Err(herr).
				Str("event", "jobs.stage_failed").
				Str(log.FieldStage, "history").
				Str(log.FieldJobID, jobID).
				Msg("failed to record run")
		}
	}

	r.mu.Lock()
	r.status = Status{
		LastRun:        run.FinishedAt,
		LastGraphs:     run.Graphs,
		LastComponents: run.Components,
		LastDuration:   duration,
	}
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.mu.Unlock()

	metrics.IncAnalysisRun(run.Outcome)
	metrics.ObserveAnalysisDuration(duration.Seconds())

	if err != nil {
		logger.Error().Err(err).
			Str("event", "jobs.run_failed").
			Str(log.FieldJobID, jobID).
			Dur("duration", duration).
			Msg("analysis run failed")
		return err
	}
	logger.Info().
		Str("event", "jobs.run_completed").
		Str(log.FieldJobID, jobID).
		Int("graphs", run.Graphs).
		Int(log.FieldComponents, run.Components).
		Dur("duration", duration).
		Msg("analysis run completed")
	return nil
}

// Status returns a snapshot of the runner state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.status
	s.Running = r.running.Load()
	return s
}

// LastRun reports when the last run finished and its error, for readiness
// checks.
func (r *Runner) LastRun() (time.Time, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.LastRun, r.status.LastError
}
