// Package api wires the HTTP surface: session handling, OAuth routes,
// calendar CRUD and the planner endpoints.
package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/alignai/alignai/internal/api/respond"
	"github.com/alignai/alignai/internal/config"
	"github.com/alignai/alignai/internal/session"
)

const loginPath = "/auth/login"

type sessionCtxKey struct{}

// SessionMiddleware resolves the browser session from the sid cookie,
// creating one (and setting the cookie) on first contact, and stashes it in
// the request context.
func SessionMiddleware(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := resolveSession(w, r, store)
			if sess == nil {
				respond.WriteInternalError(w, "session store unavailable")
				return
			}
			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveSession(w http.ResponseWriter, r *http.Request, store session.Store) *session.Session {
	if id := session.ReadCookie(r); id != "" {
		sess, err := store.Get(r.Context(), id)
		if err == nil {
			return sess
		}
		if err != session.ErrNotFound {
			log.Error().Err(err).Msg("session lookup failed")
			return nil
		}
	}
	sess, err := store.Create(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("session create failed")
		return nil
	}
	session.WriteCookie(w, sess.ID)
	return sess
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionCtxKey{}).(*session.Session)
	return sess
}

// requireAuth rejects requests whose session carries no calendar token.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r).Authenticated() {
			respond.WriteUnauthorized(w, "Not authenticated", loginPath)
			return
		}
		next(w, r)
	}
}

// requireGoogleConfig rejects requests when the OAuth client settings are
// absent, naming the missing environment variables.
func requireGoogleConfig(cfg *config.Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.HasGoogleConfig() {
			respond.WriteInternalError(w,
				"Google OAuth env vars are missing: ALIGNAI_GOOGLE_CLIENT_ID, ALIGNAI_GOOGLE_CLIENT_SECRET, ALIGNAI_GOOGLE_REDIRECT_URI")
			return
		}
		next(w, r)
	}
}
