package api

import (
	"net/http"
)

func (s *Server) handleRenderStats(w http.ResponseWriter, r *http.Request) {
	stats := s.orchestrator.Renderer().Stats()
	if stats == nil {
		jsonError(w, "render stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"window":      s.cfg.StatsWindow.String(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       stats.Snapshot(),
	})
}
