// Package gcal talks to Google Calendar through the calendar/v3 API
// client and normalizes its events into the internal shape. Reads work
// with an API key; writes need a bearer token from the OAuth flow.
package gcal

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/timeutil"
)

const (
	// Fetch window bounds relative to now, and the provider-side cap.
	windowPast   = timeutil.Month
	windowFuture = 6 * timeutil.Month
	maxResults   = 100
)

// TokenSource supplies the current bearer token, or "" when the user is
// not connected. The token owner lives elsewhere; the client only reads.
type TokenSource interface {
	Token() string
}

// Client is a calendar adapter bound to one calendar.
type Client struct {
	CalendarID string
	APIKey     string
	Tokens     TokenSource

	// Endpoint overrides the API base URL; tests point it at a local
	// server.
	Endpoint string
}

// New returns a client for the given calendar. A nil tokens source
// leaves the client in read-only (API key) mode.
func New(calendarID, apiKey string, tokens TokenSource) *Client {
	return &Client{
		CalendarID: calendarID,
		APIKey:     apiKey,
		Tokens:     tokens,
	}
}

func (c *Client) token() string {
	if c.Tokens == nil {
		return ""
	}
	return c.Tokens.Token()
}

// Authorized reports whether a bearer token is currently available.
func (c *Client) Authorized() bool { return c.token() != "" }

// Readable reports whether the client can fetch at all.
func (c *Client) Readable() bool {
	return c.CalendarID != "" && (c.APIKey != "" || c.Authorized())
}

// service builds a calendar service for the credential currently held.
// The token changes when the user connects or disconnects, so the
// service is rebuilt per call rather than cached.
func (c *Client) service(ctx context.Context) (*calendar.Service, error) {
	var opts []option.ClientOption
	switch {
	case c.token() != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token()})
		opts = append(opts, option.WithTokenSource(ts))
	case c.APIKey != "":
		opts = append(opts, option.WithAPIKey(c.APIKey))
	default:
		opts = append(opts, option.WithoutAuthentication())
	}
	if c.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.Endpoint))
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, &APIError{Kind: KindProvider, Message: "build calendar service: " + err.Error()}
	}
	return svc, nil
}

// FetchEvents lists events whose start falls inside [windowStart,
// windowEnd], ordered by start ascending and capped at 100. Zero
// bounds default to 30 days back and 6 months ahead. The returned
// events are normalized and tagged with the remote source.
func (c *Client) FetchEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]event.Event, error) {
	if !c.Readable() {
		return nil, &APIError{Kind: KindFetch, Message: "remote calendar not configured"}
	}
	now := time.Now()
	if windowStart.IsZero() {
		windowStart = now.Add(-windowPast)
	}
	if windowEnd.IsZero() {
		windowEnd = now.Add(windowFuture)
	}

	svc, err := c.service(ctx)
	if err != nil {
		return nil, asFetchError(err)
	}

	list, err := svc.Events.List(c.CalendarID).
		TimeMin(windowStart.Format(time.RFC3339)).
		TimeMax(windowEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Context(ctx).Do()
	if err != nil {
		return nil, asFetchError(classify(err))
	}

	events := make([]event.Event, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, normalize(item))
	}
	return events, nil
}

// CreateEvent inserts the event into the remote calendar and returns it
// with the provider-assigned id.
func (c *Client) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	if err := c.requireToken(); err != nil {
		return event.Event{}, err
	}
	svc, err := c.service(ctx)
	if err != nil {
		return event.Event{}, err
	}
	created, err := svc.Events.Insert(c.CalendarID, denormalize(e)).Context(ctx).Do()
	if err != nil {
		return event.Event{}, classify(err)
	}
	return normalize(created), nil
}

// UpdateEvent replaces the remote event with the same id.
func (c *Client) UpdateEvent(ctx context.Context, e event.Event) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	if e.ID == "" {
		return &APIError{Kind: KindProvider, Message: "event id required"}
	}
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	if _, err := svc.Events.Update(c.CalendarID, e.ID, denormalize(e)).Context(ctx).Do(); err != nil {
		return classify(err)
	}
	return nil
}

// DeleteEvent removes the remote event by id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	if id == "" {
		return &APIError{Kind: KindProvider, Message: "event id required"}
	}
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	if err := svc.Events.Delete(c.CalendarID, id).Context(ctx).Do(); err != nil {
		return classify(err)
	}
	return nil
}

func (c *Client) requireToken() error {
	if !c.Authorized() {
		return &APIError{Kind: KindUnauthorized, Message: "no bearer token"}
	}
	return nil
}

// normalize maps a provider event to the internal shape. Date-only
// (all-day) values become midnight local time on that date.
func normalize(item *calendar.Event) event.Event {
	e := event.Event{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Color:       ColorFromProvider(item.ColorId),
		Source:      event.SourceRemote,
		Start:       parseEventTime(item.Start),
	}
	if end := parseEventTime(item.End); !end.IsZero() {
		e.End = &end
	}
	e.Normalize()
	return e
}

func parseEventTime(t *calendar.EventDateTime) time.Time {
	if t == nil {
		return time.Time{}
	}
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed
		}
	}
	if t.Date != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", t.Date, time.Local); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func denormalize(e event.Event) *calendar.Event {
	return &calendar.Event{
		Id:          e.ID,
		Summary:     e.Title,
		Description: e.Description,
		ColorId:     ProviderColorID(e.Color),
		Start:       &calendar.EventDateTime{DateTime: e.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: e.EndTime().Format(time.RFC3339)},
	}
}
