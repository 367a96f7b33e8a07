package api

import (
	"net/http"
	"time"

	"github.com/alignai/alignai/internal/api/respond"
	"github.com/alignai/alignai/internal/config"
)

// HealthHandler reports service liveness and which integrations are
// configured.
type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// CheckHealth handles GET /api/health
// Always returns 200; the booleans tell the frontend which flows to offer.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":              true,
		"model":           h.cfg.OpenAIModel,
		"timezone":        h.cfg.CalendarTimezone,
		"hasGoogleConfig": h.cfg.HasGoogleConfig(),
		"hasOpenAIKey":    h.cfg.HasOpenAIKey(),
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}
