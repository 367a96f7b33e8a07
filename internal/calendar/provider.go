// Package calendar defines the calendar provider capability interface and
// the normalization of provider events into canonical records.
package calendar

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/alignai/alignai/internal/model"
)

// EventWrite is the payload for creating a new event.
type EventWrite struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// EventPatch is a partial update. Nil fields are left untouched; Start and
// End must be set together.
type EventPatch struct {
	Summary     *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
}

// Provider is the per-user calendar capability. Implementations return
// events already normalized into the canonical shape.
type Provider interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]model.CalendarEvent, error)
	CreateEvent(ctx context.Context, w EventWrite) (model.CalendarEvent, error)
	UpdateEvent(ctx context.Context, eventID string, p EventPatch) (model.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
	Profile(ctx context.Context) (model.Profile, error)
}

// Connector owns the OAuth2 configuration and mints per-user providers from
// stored tokens.
type Connector interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	ProviderFor(ctx context.Context, token *oauth2.Token) (Provider, error)
}
