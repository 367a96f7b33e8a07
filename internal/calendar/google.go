package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calapi "google.golang.org/api/calendar/v3"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/alignai/alignai/internal/model"
)

const (
	primaryCalendarID = "primary"
	listMaxResults    = 300
)

// GoogleConnector implements Connector against the Google Calendar and
// userinfo APIs.
type GoogleConnector struct {
	oauth    *oauth2.Config
	timezone string
}

// NewGoogleConnector builds a connector from OAuth client credentials. The
// timezone is the reference zone used for date-key derivation.
func NewGoogleConnector(clientID, clientSecret, redirectURI, timezone string) *GoogleConnector {
	return &GoogleConnector{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				calapi.CalendarScope,
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
		},
		timezone: timezone,
	}
}

func (c *GoogleConnector) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (c *GoogleConnector) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange: %w", err)
	}
	return tok, nil
}

// ProviderFor mints a per-user provider bound to the given token.
func (c *GoogleConnector) ProviderFor(ctx context.Context, token *oauth2.Token) (Provider, error) {
	ts := c.oauth.TokenSource(ctx, token)
	calSvc, err := calapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	userSvc, err := oauth2api.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("userinfo service: %w", err)
	}
	return &googleProvider{cal: calSvc, user: userSvc, timezone: c.timezone}, nil
}

type googleProvider struct {
	cal      *calapi.Service
	user     *oauth2api.Service
	timezone string
}

func (g *googleProvider) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]model.CalendarEvent, error) {
	res, err := g.cal.Events.List(primaryCalendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(listMaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]model.CalendarEvent, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, NormalizeEvent(item, g.timezone))
	}
	return events, nil
}

func (g *googleProvider) CreateEvent(ctx context.Context, w EventWrite) (model.CalendarEvent, error) {
	created, err := g.cal.Events.Insert(primaryCalendarID, &calapi.Event{
		Summary:     w.Summary,
		Description: w.Description,
		Location:    w.Location,
		Start:       &calapi.EventDateTime{DateTime: w.Start.Format(time.RFC3339), TimeZone: g.timezone},
		End:         &calapi.EventDateTime{DateTime: w.End.Format(time.RFC3339), TimeZone: g.timezone},
	}).Context(ctx).Do()
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("insert event: %w", err)
	}
	return NormalizeEvent(created, g.timezone), nil
}

func (g *googleProvider) UpdateEvent(ctx context.Context, eventID string, p EventPatch) (model.CalendarEvent, error) {
	patch := &calapi.Event{}
	if p.Summary != nil {
		patch.Summary = *p.Summary
	}
	if p.Description != nil {
		patch.Description = *p.Description
	}
	if p.Location != nil {
		patch.Location = *p.Location
	}
	if p.Start != nil && p.End != nil {
		patch.Start = &calapi.EventDateTime{DateTime: p.Start.Format(time.RFC3339), TimeZone: g.timezone}
		patch.End = &calapi.EventDateTime{DateTime: p.End.Format(time.RFC3339), TimeZone: g.timezone}
	}
	updated, err := g.cal.Events.Patch(primaryCalendarID, eventID, patch).Context(ctx).Do()
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("patch event %s: %w", eventID, err)
	}
	return NormalizeEvent(updated, g.timezone), nil
}

func (g *googleProvider) DeleteEvent(ctx context.Context, eventID string) error {
	if err := g.cal.Events.Delete(primaryCalendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (g *googleProvider) Profile(ctx context.Context) (model.Profile, error) {
	info, err := g.user.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return model.Profile{}, fmt.Errorf("get userinfo: %w", err)
	}
	return model.Profile{Name: info.Name, Email: info.Email, Picture: info.Picture}, nil
}
