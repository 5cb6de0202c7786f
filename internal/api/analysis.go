// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"

	"github.com/padslib/pads/internal/history"
	"github.com/padslib/pads/internal/jobs"
	"github.com/padslib/pads/internal/log"
)

// handleAnalyze triggers a background analysis run.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	jobID, err := s.runner.TriggerAsync(r.Context())
	if err != nil {
		if errors.Is(err, jobs.ErrBusy) {
			writeErrorMsg(w, http.StatusConflict, "analysis already running")
			return
		}
		writeErrorMsg(w, http.StatusInternalServerError, "failed to start analysis")
		return
	}

	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Info().
		Str("event", "api.analysis_triggered").
		Str(log.FieldJobID, jobID).
		Msg("analysis triggered")
	writeJSON(w, http.StatusAccepted, map[string]string{"jobId": jobID})
}

// handleStatus reports the runner state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Status())
}

// handleRuns lists recent analysis runs, newest first.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil || limit < 1 || limit > 500 {
		writeErrorMsg(w, http.StatusBadRequest, "limit must be an integer in [1,500]")
		return
	}

	runs, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "failed to query run history")
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}
