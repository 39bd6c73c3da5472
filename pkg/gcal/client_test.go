package gcal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"tableflip.dev/tempo/pkg/event"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func testClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("primary", "test-key", tokens)
	c.Endpoint = srv.URL
	return c
}

func TestFetchEventsNormalizes(t *testing.T) {
	var gotQuery url.Values
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":      "g1",
					"summary": "Standup",
					"colorId": "9",
					"start":   map[string]string{"dateTime": "2024-01-01T09:00:00Z"},
					"end":     map[string]string{"dateTime": "2024-01-01T09:30:00Z"},
				},
				{
					"id":    "g2",
					"start": map[string]string{"date": "2024-01-02"},
				},
			},
		})
	}, nil)

	events, err := c.FetchEvents(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}

	first := events[0]
	if first.ID != "g1" || first.Title != "Standup" || first.Source != event.SourceRemote {
		t.Errorf("first = %+v", first)
	}
	if first.Color != event.ColorBlue {
		t.Errorf("color = %q, want blue", first.Color)
	}
	if first.End == nil || !first.End.Equal(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("end = %v", first.End)
	}

	// All-day event: midnight local start, defaulted title/end/color.
	second := events[1]
	wantStart := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)
	if !second.Start.Equal(wantStart) {
		t.Errorf("all-day start = %v, want %v", second.Start, wantStart)
	}
	if second.Title != event.DefaultTitle || second.Color != event.DefaultColor || second.End == nil {
		t.Errorf("all-day defaults = %+v", second)
	}

	if gotQuery.Get("singleEvents") != "true" || gotQuery.Get("orderBy") != "startTime" {
		t.Errorf("query = %v", gotQuery)
	}
	if gotQuery.Get("maxResults") != "100" {
		t.Errorf("maxResults = %q", gotQuery.Get("maxResults"))
	}
	if gotQuery.Get("key") != "test-key" {
		t.Errorf("key = %q, want API key on unauthorized read", gotQuery.Get("key"))
	}
}

func TestFetchEventsProviderErrorIsFetchKind(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"backend blew up"}}`))
	}, nil)

	_, err := c.FetchEvents(context.Background(), time.Time{}, time.Time{})
	if !IsFetchError(err) {
		t.Fatalf("err = %v, want fetch kind", err)
	}
}

func TestFetchEventsNotConfigured(t *testing.T) {
	c := New("", "", nil)
	if _, err := c.FetchEvents(context.Background(), time.Time{}, time.Time{}); !IsFetchError(err) {
		t.Fatalf("err = %v, want fetch kind", err)
	}
}

func TestMutationsRequireToken(t *testing.T) {
	c := New("primary", "key", nil)
	ctx := context.Background()

	if _, err := c.CreateEvent(ctx, event.New("x", time.Now())); !IsUnauthorized(err) {
		t.Errorf("create = %v, want unauthorized", err)
	}
	if err := c.UpdateEvent(ctx, event.Event{ID: "g1"}); !IsUnauthorized(err) {
		t.Errorf("update = %v, want unauthorized", err)
	}
	if err := c.DeleteEvent(ctx, "g1"); !IsUnauthorized(err) {
		t.Errorf("delete = %v, want unauthorized", err)
	}
}

func TestCreateEventSendsBearerAndColor(t *testing.T) {
	var gotAuth string
	var gotBody calendar.Event
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		gotBody.Id = "remote-1"
		json.NewEncoder(w).Encode(&gotBody)
	}, staticToken("tok-123"))

	e := event.New("Party", time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC))
	e.Color = event.ColorPurple

	created, err := c.CreateEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody.ColorId != "3" {
		t.Errorf("colorId = %q, want 3", gotBody.ColorId)
	}
	if created.ID != "remote-1" || created.Source != event.SourceRemote {
		t.Errorf("created = %+v", created)
	}
}

func TestRejectedTokenIsUnauthorized(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	}, staticToken("expired"))

	err := c.UpdateEvent(context.Background(), event.Event{ID: "g1", Title: "x", Start: time.Now()})
	if !IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestProviderErrorOnMutation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota"}}`))
	}, staticToken("tok"))

	err := c.DeleteEvent(context.Background(), "g1")
	var apiErr *APIError
	if !asAPIError(err, &apiErr) || apiErr.Kind != KindProvider || apiErr.Status != http.StatusForbidden {
		t.Fatalf("err = %v, want provider 403", err)
	}
}

func asAPIError(err error, target **APIError) bool {
	e, ok := err.(*APIError)
	if ok {
		*target = e
	}
	return ok
}
