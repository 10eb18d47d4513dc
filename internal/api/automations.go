package api

import (
	"net/http"
)

// handleListExecutions returns recent automation executions, newest first.
func (s *Server) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	if s.executions == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "execution log is not enabled")
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	execs, err := s.executions.ListExecutions(r.Context(), r.URL.Query().Get("automation_id"), limit)
	if err != nil {
		s.logger.Error("listing automation executions failed", "error", err)
		writeInternalError(w, "failed to list executions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"executions": execs,
		"count":      len(execs),
	})
}
