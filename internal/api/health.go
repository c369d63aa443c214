package api

import (
	"net/http"
	"time"

	"github.com/tokosena/tokosena/server/internal/api/respond"
	"github.com/tokosena/tokosena/server/internal/store"
)

// HealthHandler serves liveness and store readiness endpoints.
type HealthHandler struct {
	checker *store.HealthChecker
	started time.Time
}

func NewHealthHandler(checker *store.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker, started: time.Now()}
}

// CheckHealth GET /api/health reports process liveness only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, _ *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// CheckStoreHealth GET /api/health/db reports the cached store probe result.
func (h *HealthHandler) CheckStoreHealth(w http.ResponseWriter, _ *http.Request) {
	if h.checker == nil || !h.checker.IsHealthy() {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
