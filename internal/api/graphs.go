// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/padslib/pads/internal/cache"
	"github.com/padslib/pads/internal/graph"
	"github.com/padslib/pads/internal/jobs"
	"github.com/padslib/pads/internal/log"
	"github.com/padslib/pads/internal/metrics"
	"github.com/padslib/pads/internal/store"
	"github.com/padslib/pads/internal/telemetry"
)

// maxGraphVertices bounds accepted graph sizes; SCC is linear but payloads
// above this point to a misuse of the API.
const maxGraphVertices = 100000

type graphRequest struct {
	Name  string              `json:"name"`
	Edges map[string][]string `json:"edges"`
}

func (gr *graphRequest) validate() error {
	if gr.Edges == nil {
		return errors.New("edges map is required")
	}
	if len(gr.Name) > 200 {
		return errors.New("name exceeds 200 characters")
	}
	vertices := make(map[string]struct{}, len(gr.Edges))
	for v, targets := range gr.Edges {
		vertices[v] = struct{}{}
		for _, w := range targets {
			vertices[w] = struct{}{}
		}
	}
	if len(vertices) > maxGraphVertices {
		return fmt.Errorf("graph exceeds %d vertices", maxGraphVertices)
	}
	return nil
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	now := time.Now().UTC()
	rec := &store.GraphRecord{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Adjacency: req.Edges,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		metrics.IncStoreError("put")
		writeErrorMsg(w, http.StatusInternalServerError, "failed to store graph")
		return
	}

	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Info().
		Str("event", "api.graph_created").
		Str(log.FieldGraphID, rec.ID).
		Msg("graph created")
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		metrics.IncStoreError("scan")
		writeErrorMsg(w, http.StatusInternalServerError, "failed to list graphs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"graphs": recs,
		"count":  len(recs),
	})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.fetchGraph(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateGraph(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.fetchGraph(w, r)
	if !ok {
		return
	}

	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	rec.Name = req.Name
	rec.Adjacency = req.Edges
	rec.Revision++
	rec.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(r.Context(), rec); err != nil {
		metrics.IncStoreError("put")
		writeErrorMsg(w, http.StatusInternalServerError, "failed to store graph")
		return
	}

	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Info().
		Str("event", "api.graph_updated").
		Str(log.FieldGraphID, rec.ID).
		Uint64(log.FieldRevision, rec.Revision).
		Msg("graph updated")
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	// Store deletes are idempotent, so the 404 needs an existence check.
	rec, ok := s.fetchGraph(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), rec.ID); err != nil {
		metrics.IncStoreError("delete")
		writeErrorMsg(w, http.StatusInternalServerError, "failed to delete graph")
		return
	}
	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Info().
		Str("event", "api.graph_deleted").
		Str(log.FieldGraphID, rec.ID).
		Msg("graph deleted")
	w.WriteHeader(http.StatusNoContent)
}

// handleSCC serves the strong components of a graph, cached per revision.
func (s *Server) handleSCC(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.fetchGraph(w, r)
	if !ok {
		return
	}

	_, span := telemetry.Tracer("pads.api").Start(r.Context(), "api.scc")
	defer span.End()

	key := cache.SCCKey(rec.ID, rec.Revision)
	if v, found := s.cache.Get(key); found {
		if res, ok := jobs.DecodeSCC(v); ok {
			metrics.IncCacheHit()
			span.SetAttributes(telemetry.GraphAttributes(rec.ID, res.Vertices, res.Edges, rec.Revision)...)
			span.SetAttributes(telemetry.AnalysisAttributes(len(res.Components), true)...)
			writeJSON(w, http.StatusOK, res)
			return
		}
	}
	metrics.IncCacheMiss()

	res := jobs.Compute(rec)
	s.cache.Set(key, res, s.cfg.CacheTTL)
	span.SetAttributes(telemetry.GraphAttributes(rec.ID, res.Vertices, res.Edges, rec.Revision)...)
	span.SetAttributes(telemetry.AnalysisAttributes(len(res.Components), false)...)
	writeJSON(w, http.StatusOK, res)
}

type condensationResponse struct {
	GraphID    string     `json:"graphId"`
	Revision   uint64     `json:"revision"`
	Components [][]string `json:"components"`
	Edges      [][]int    `json:"edges"`
}

// handleCondensation serves the component DAG of a graph.
func (s *Server) handleCondensation(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.fetchGraph(w, r)
	if !ok {
		return
	}

	g := graph.FromAdjacency(rec.Adjacency)
	c := graph.Condense(g)
	writeJSON(w, http.StatusOK, condensationResponse{
		GraphID:    rec.ID,
		Revision:   rec.Revision,
		Components: c.Components,
		Edges:      c.Edges,
	})
}

// fetchGraph loads the graph named in the URL, writing the error response
// itself when the lookup fails.
func (s *Server) fetchGraph(w http.ResponseWriter, r *http.Request) (*store.GraphRecord, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
		} else {
			metrics.IncStoreError("get")
			writeErrorMsg(w, http.StatusInternalServerError, "failed to load graph")
		}
		return nil, false
	}
	return rec, true
}
