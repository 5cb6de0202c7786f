// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldJobID     = "job_id"
	FieldGraphID   = "graph_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldStage     = "stage"

	// Domain fields
	FieldFamily     = "family"
	FieldVertices   = "vertices"
	FieldEdges      = "edges"
	FieldComponents = "components"
	FieldRevision   = "revision"

	// Path fields
	FieldPath = "path"
)
