package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/alignai/alignai/internal/api/respond"
	"github.com/alignai/alignai/internal/calendar"
	"github.com/alignai/alignai/internal/config"
	"github.com/alignai/alignai/internal/model"
	"github.com/alignai/alignai/internal/timeutil"
)

// EventsHandler exposes the calendar week view and event CRUD.
type EventsHandler struct {
	connector calendar.Connector
	cfg       *config.Config
}

func NewEventsHandler(connector calendar.Connector, cfg *config.Config) *EventsHandler {
	return &EventsHandler{connector: connector, cfg: cfg}
}

func mintProvider(r *http.Request, connector calendar.Connector) (calendar.Provider, error) {
	return connector.ProviderFor(r.Context(), sessionFrom(r).Token)
}

// parseWeekOffset reads a week offset from a raw query or JSON value;
// anything unparseable counts as the current week.
func parseWeekOffset(raw string) int {
	n, err := strconv.Atoi(strings.Trim(raw, `"`))
	if err != nil {
		return 0
	}
	return n
}

func (h *EventsHandler) weekWindow(weekOffset int) (model.WeekWindow, timeutil.NowContext) {
	now := timeutil.ResolveNow(h.cfg.CalendarTimezone)
	return timeutil.ComputeWeekWindow(now.Now, weekOffset, h.cfg.WeekLengthDays), now
}

type weekResponse struct {
	Start      string          `json:"start"`
	End        string          `json:"end"`
	Days       []model.WeekDay `json:"days"`
	WeekOffset int             `json:"weekOffset"`
}

// WeekEvents GET /api/week-events?weekOffset=N
func (h *EventsHandler) WeekEvents(w http.ResponseWriter, r *http.Request) {
	weekOffset := parseWeekOffset(r.URL.Query().Get("weekOffset"))
	week, _ := h.weekWindow(weekOffset)

	provider, err := mintProvider(r, h.connector)
	if err != nil {
		respond.WriteInternalError(w, "Failed to read calendar events")
		return
	}
	events, err := provider.ListEvents(r.Context(), week.Start, week.End)
	if err != nil {
		log.Error().Err(err).Int("week_offset", weekOffset).Msg("week events fetch failed")
		respond.WriteInternalError(w, "Failed to read calendar events")
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"week": weekResponse{
			Start:      week.Start.Format(time.RFC3339),
			End:        week.End.Format(time.RFC3339),
			Days:       week.Days,
			WeekOffset: weekOffset,
		},
		"events": events,
	})
}

func parseEventRange(start, end string) (time.Time, time.Time, bool) {
	s, errS := time.Parse(time.RFC3339, start)
	e, errE := time.Parse(time.RFC3339, end)
	if errS != nil || errE != nil || !e.After(s) {
		return time.Time{}, time.Time{}, false
	}
	return s, e, true
}

// Create POST /api/events
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Summary     string `json:"summary"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Description string `json:"description"`
		Location    string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Summary == "" || req.Start == "" || req.End == "" {
		respond.WriteBadRequest(w, "summary, start, end are required")
		return
	}
	start, end, ok := parseEventRange(req.Start, req.End)
	if !ok {
		respond.WriteBadRequest(w, "Invalid date range")
		return
	}

	provider, err := mintProvider(r, h.connector)
	if err != nil {
		respond.WriteInternalError(w, "Failed to create event")
		return
	}
	created, err := provider.CreateEvent(r.Context(), calendar.EventWrite{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Start:       start,
		End:         end,
	})
	if err != nil {
		log.Error().Err(err).Msg("event create failed")
		respond.WriteInternalError(w, "Failed to create event")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "event": created})
}

// Update PUT /api/events/{eventId}
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var req struct {
		Summary     *string `json:"summary"`
		Start       *string `json:"start"`
		End         *string `json:"end"`
		Description *string `json:"description"`
		Location    *string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	patch := calendar.EventPatch{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Start != nil || req.End != nil {
		if req.Start == nil || req.End == nil {
			respond.WriteBadRequest(w, "Both start and end are required together")
			return
		}
		start, end, ok := parseEventRange(*req.Start, *req.End)
		if !ok {
			respond.WriteBadRequest(w, "Invalid date range")
			return
		}
		patch.Start = &start
		patch.End = &end
	}
	if patch.Summary == nil && patch.Description == nil && patch.Location == nil && patch.Start == nil {
		respond.WriteBadRequest(w, "No update payload provided")
		return
	}

	provider, err := mintProvider(r, h.connector)
	if err != nil {
		respond.WriteInternalError(w, "Failed to update event")
		return
	}
	updated, err := provider.UpdateEvent(r.Context(), eventID, patch)
	if err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("event update failed")
		respond.WriteInternalError(w, "Failed to update event")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "event": updated})
}

// Delete DELETE /api/events/{eventId}
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	provider, err := mintProvider(r, h.connector)
	if err != nil {
		respond.WriteInternalError(w, "Failed to delete event")
		return
	}
	if err := provider.DeleteEvent(r.Context(), eventID); err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("event delete failed")
		respond.WriteInternalError(w, "Failed to delete event")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
