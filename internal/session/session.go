// Package session holds per-browser session state: OAuth tokens and the
// login-flow state nonce. It is the only cross-request state in the system.
package session

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// Session is one browser session. Token is nil until the OAuth flow
// completes.
type Session struct {
	ID         string
	Token      *oauth2.Token
	OAuthState string
}

// Authenticated reports whether the session carries calendar credentials.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != nil
}

// Store is the session store capability injected into request handlers.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Create(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
