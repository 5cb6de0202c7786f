// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus collectors for the pads daemon.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Graph store metrics
	graphsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pads_graphs_stored",
		Help: "Number of graphs currently stored (last analysis run)",
	})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pads_store_errors_total",
		Help: "Store operation failures by operation",
	}, []string{"op"}) // op=put|get|delete|scan

	// Analysis metrics
	analysisRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pads_analysis_runs_total",
		Help: "Background analysis runs by outcome",
	}, []string{"outcome"}) // outcome=success|failure|busy

	analysisFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pads_analysis_failures_total",
		Help: "Analysis failures by stage",
	}, []string{"stage"}) // stage=scan|compute|report|history

	analysisDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pads_analysis_duration_seconds",
		Help:    "Wall time of a full background analysis run",
		Buckets: prometheus.DefBuckets,
	})

	sccDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pads_scc_duration_seconds",
		Help:    "Time to compute strong components for one graph",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	sccComponents = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pads_scc_components",
		Help:    "Strong component count per analyzed graph",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	// Enumeration metrics
	enumerationPages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pads_enumeration_pages_total",
		Help: "Enumeration pages served by family",
	}, []string{"family"}) // family=plain|double|stirling|involution

	enumerationItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pads_enumeration_items_total",
		Help: "Enumeration items served by family",
	}, []string{"family"})

	// Cache metrics
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pads_cache_lookups_total",
		Help: "SCC cache lookups by outcome",
	}, []string{"outcome"}) // outcome=hit|miss
)

func RecordGraphCount(n int)          { graphsStored.Set(float64(n)) }
func IncStoreError(op string)         { storeErrors.WithLabelValues(op).Inc() }
func IncAnalysisRun(outcome string)   { analysisRuns.WithLabelValues(outcome).Inc() }
func IncAnalysisFailure(stage string) { analysisFailures.WithLabelValues(stage).Inc() }

func ObserveAnalysisDuration(seconds float64) { analysisDurationSeconds.Observe(seconds) }

func ObserveSCC(components int, seconds float64) {
	sccDurationSeconds.Observe(seconds)
	sccComponents.Observe(float64(components))
}

func RecordEnumerationPage(family string, items int) {
	enumerationPages.WithLabelValues(family).Inc()
	enumerationItems.WithLabelValues(family).Add(float64(items))
}

func IncCacheHit()  { cacheLookups.WithLabelValues("hit").Inc() }
func IncCacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }
