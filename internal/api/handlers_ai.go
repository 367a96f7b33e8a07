package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/alignai/alignai/internal/api/respond"
	"github.com/alignai/alignai/internal/calendar"
	"github.com/alignai/alignai/internal/config"
	"github.com/alignai/alignai/internal/model"
	"github.com/alignai/alignai/internal/planner"
	"github.com/alignai/alignai/internal/timeutil"
)

// AIHandler exposes the planner chat and top-tasks endpoints.
type AIHandler struct {
	connector calendar.Connector
	planner   *planner.Planner
	cfg       *config.Config
}

func NewAIHandler(connector calendar.Connector, pl *planner.Planner, cfg *config.Config) *AIHandler {
	return &AIHandler{connector: connector, planner: pl, cfg: cfg}
}

func (h *AIHandler) fetchWeek(r *http.Request, weekOffset int) (model.WeekWindow, []model.CalendarEvent, error) {
	now := timeutil.ResolveNow(h.cfg.CalendarTimezone)
	week := timeutil.ComputeWeekWindow(now.Now, weekOffset, h.cfg.WeekLengthDays)

	provider, err := mintProvider(r, h.connector)
	if err != nil {
		return model.WeekWindow{}, nil, err
	}
	events, err := provider.ListEvents(r.Context(), week.Start, week.End)
	if err != nil {
		return model.WeekWindow{}, nil, err
	}
	return week, events, nil
}

// Chat POST /api/ai/chat
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message    string          `json:"message"`
		WeekOffset json.RawMessage `json:"weekOffset"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respond.WriteBadRequest(w, "message is required")
		return
	}
	weekOffset := parseWeekOffset(string(req.WeekOffset))

	week, events, err := h.fetchWeek(r, weekOffset)
	if err != nil {
		log.Error().Err(err).Msg("chat calendar fetch failed")
		respond.WriteInternalError(w, "AI planning failed")
		return
	}

	result, err := h.planner.Chat(r.Context(), message, events, week)
	if err != nil {
		log.Error().Err(err).Msg("planner chat failed")
		respond.WriteInternalError(w, "AI planning failed")
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"weekOffset": weekOffset,
		"ai":         result,
	})
}

// TopTasks POST /api/ai/top-tasks
func (h *AIHandler) TopTasks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scope      string          `json:"scope"`
		WeekOffset json.RawMessage `json:"weekOffset"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	weekOffset := parseWeekOffset(string(req.WeekOffset))

	week, events, err := h.fetchWeek(r, weekOffset)
	if err != nil {
		log.Error().Err(err).Msg("top tasks calendar fetch failed")
		respond.WriteInternalError(w, "Failed to read calendar events")
		return
	}

	result := h.planner.TopTasks(r.Context(), events, week, req.Scope)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"weekOffset": weekOffset,
		"result":     result,
	})
}
