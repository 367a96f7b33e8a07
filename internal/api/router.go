package api

import (
	"github.com/gorilla/mux"

	"github.com/alignai/alignai/internal/api/recovery"
	"github.com/alignai/alignai/internal/calendar"
	"github.com/alignai/alignai/internal/config"
	"github.com/alignai/alignai/internal/planner"
	"github.com/alignai/alignai/internal/session"
)

// NewRouter assembles the HTTP surface around the injected collaborators.
func NewRouter(cfg *config.Config, store session.Store, connector calendar.Connector, pl *planner.Planner) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(SessionMiddleware(store))

	healthHandler := NewHealthHandler(cfg)
	authHandler := NewAuthHandler(store, connector)
	eventsHandler := NewEventsHandler(connector, cfg)
	aiHandler := NewAIHandler(connector, pl, cfg)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Auth endpoints
	router.HandleFunc("/auth/login", requireGoogleConfig(cfg, authHandler.Login)).Methods("GET")
	router.HandleFunc("/auth/callback", requireGoogleConfig(cfg, authHandler.Callback)).Methods("GET")
	router.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	router.HandleFunc("/api/me", requireGoogleConfig(cfg, authHandler.Me)).Methods("GET")

	// Calendar endpoints
	router.HandleFunc("/api/week-events", requireGoogleConfig(cfg, requireAuth(eventsHandler.WeekEvents))).Methods("GET")
	router.HandleFunc("/api/events", requireGoogleConfig(cfg, requireAuth(eventsHandler.Create))).Methods("POST")
	router.HandleFunc("/api/events/{eventId}", requireGoogleConfig(cfg, requireAuth(eventsHandler.Update))).Methods("PUT")
	router.HandleFunc("/api/events/{eventId}", requireGoogleConfig(cfg, requireAuth(eventsHandler.Delete))).Methods("DELETE")

	// Planner endpoints
	router.HandleFunc("/api/ai/chat", requireGoogleConfig(cfg, requireAuth(aiHandler.Chat))).Methods("POST")
	router.HandleFunc("/api/ai/top-tasks", requireGoogleConfig(cfg, requireAuth(aiHandler.TopTasks))).Methods("POST")

	return router
}
