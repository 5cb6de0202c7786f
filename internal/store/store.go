// SPDX-License-Identifier: MIT

// Package store persists graph records.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a graph id has no record.
var ErrNotFound = errors.New("store: graph not found")

// GraphRecord is the persisted representation of a named directed graph.
// The adjacency map follows the vertex -> neighbor-list convention; targets
// that never appear as keys are still vertices of the graph.
type GraphRecord struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Adjacency map[string][]string `json:"edges"`
	Revision  uint64              `json:"revision"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// Store is the persistence contract for graph records.
type Store interface {
	// Put stores or replaces the record under rec.ID.
	Put(ctx context.Context, rec *GraphRecord) error
	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*GraphRecord, error)
	// Delete removes the record for id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// List returns all records.
	List(ctx context.Context) ([]*GraphRecord, error)
	// Scan streams all records through fn, honoring ctx cancellation.
	Scan(ctx context.Context, fn func(*GraphRecord) error) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}
