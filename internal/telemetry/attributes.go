// SPDX-License-Identifier: MIT

package telemetry

import "go.opentelemetry.io/otel/attribute"

// Common attribute keys for consistent tracing across the daemon.
const (
	// Graph attributes
	GraphIDKey       = "graph.id"
	GraphVerticesKey = "graph.vertices"
	GraphEdgesKey    = "graph.edges"
	GraphRevisionKey = "graph.revision"

	// Analysis attributes
	AnalysisComponentsKey = "analysis.components"
	AnalysisCachedKey     = "analysis.cached"

	// Enumeration attributes
	EnumerationFamilyKey = "enumeration.family"
	EnumerationNKey      = "enumeration.n"
	EnumerationOffsetKey = "enumeration.offset"

	// Job attributes
	JobIDKey     = "job.id"
	JobGraphsKey = "job.graphs"
)

// GraphAttributes creates graph-related span attributes.
func GraphAttributes(id string, vertices, edges int, revision uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(GraphIDKey, id),
		attribute.Int(GraphVerticesKey, vertices),
		attribute.Int(GraphEdgesKey, edges),
		attribute.Int64(GraphRevisionKey, int64(revision)),
	}
}

// EnumerationAttributes creates enumeration-related span attributes.
func EnumerationAttributes(family string, n, offset int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(EnumerationFamilyKey, family),
		attribute.Int(EnumerationNKey, n),
		attribute.Int(EnumerationOffsetKey, offset),
	}
}

// AnalysisAttributes creates analysis-result span attributes.
func AnalysisAttributes(components int, cached bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AnalysisComponentsKey, components),
		attribute.Bool(AnalysisCachedKey, cached),
	}
}

// JobAttributes creates background-run span attributes.
func JobAttributes(jobID string, graphs int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(JobIDKey, jobID),
		attribute.Int(JobGraphsKey, graphs),
	}
}
