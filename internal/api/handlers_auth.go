package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alignai/alignai/internal/api/respond"
	"github.com/alignai/alignai/internal/calendar"
	"github.com/alignai/alignai/internal/session"
)

// AuthHandler owns the OAuth login flow and session identity endpoints.
type AuthHandler struct {
	store     session.Store
	connector calendar.Connector
}

func NewAuthHandler(store session.Store, connector calendar.Connector) *AuthHandler {
	return &AuthHandler{store: store, connector: connector}
}

// Login GET /auth/login
// Mints a fresh state nonce and redirects to the provider consent screen.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.OAuthState = uuid.NewString()
	if err := h.store.Save(r.Context(), sess); err != nil {
		respond.WriteInternalError(w, "Failed to persist session")
		return
	}
	http.Redirect(w, r, h.connector.AuthURL(sess.OAuthState), http.StatusFound)
}

// Callback GET /auth/callback
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	q := r.URL.Query()

	code := q.Get("code")
	if code == "" {
		respond.WriteBadRequest(w, `Missing "code" query value.`)
		return
	}
	state := q.Get("state")
	if state == "" || sess.OAuthState == "" || state != sess.OAuthState {
		respond.WriteBadRequest(w, "Invalid OAuth state.")
		return
	}

	token, err := h.connector.Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange failed")
		respond.WriteInternalError(w, "OAuth callback failed")
		return
	}

	sess.Token = token
	sess.OAuthState = ""
	if err := h.store.Save(r.Context(), sess); err != nil {
		respond.WriteInternalError(w, "Failed to persist session")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := session.ReadCookie(r); id != "" {
		if err := h.store.Delete(r.Context(), id); err != nil && err != session.ErrNotFound {
			log.Error().Err(err).Msg("session delete failed")
		}
	}
	session.ClearCookie(w)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// Me GET /api/me
// Reports authentication state; resolves the provider profile when signed in.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if !sess.Authenticated() {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"authenticated": false,
			"loginUrl":      loginPath,
		})
		return
	}

	provider, err := h.connector.ProviderFor(r.Context(), sess.Token)
	if err != nil {
		respond.WriteInternalError(w, "Failed to read profile")
		return
	}
	profile, err := provider.Profile(r.Context())
	if err != nil {
		respond.WriteInternalError(w, "Failed to read profile")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"profile":       profile,
	})
}
