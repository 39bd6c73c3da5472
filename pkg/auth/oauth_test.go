package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// urlCapture hands the printed consent URL to the test goroutine.
type urlCapture struct{ ch chan string }

func (c urlCapture) Write(p []byte) (int, error) {
	c.ch <- string(p)
	return len(p), nil
}

func testFlow(t *testing.T, tokenURL string) (*Flow, chan string) {
	t.Helper()
	f := NewFlow("client-id", "client-secret")
	f.Config.Endpoint = oauth2.Endpoint{
		AuthURL:  "https://auth.invalid/consent",
		TokenURL: tokenURL,
	}
	ch := make(chan string, 1)
	f.Out = urlCapture{ch: ch}
	return f, ch
}

func consentURL(t *testing.T, printed string) *url.URL {
	t.Helper()
	for _, field := range strings.Fields(printed) {
		if strings.HasPrefix(field, "http") {
			u, err := url.Parse(field)
			if err != nil {
				t.Fatalf("parse consent url: %v", err)
			}
			return u
		}
	}
	t.Fatalf("no consent url in output %q", printed)
	return nil
}

func TestLoginExchangesAuthorizationCode(t *testing.T) {
	var gotForm url.Values
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-abc","token_type":"Bearer"}`))
	}))
	defer tokenSrv.Close()

	f, printed := testFlow(t, tokenSrv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	var token string
	var loginErr error
	go func() {
		defer close(done)
		token, loginErr = f.Login(ctx)
	}()

	consent := consentURL(t, <-printed)
	q := consent.Query()
	if q.Get("access_type") != "offline" {
		t.Errorf("access_type = %q, want offline", q.Get("access_type"))
	}
	if q.Get("scope") != CalendarScope {
		t.Errorf("scope = %q", q.Get("scope"))
	}
	redirect, state := q.Get("redirect_uri"), q.Get("state")
	if redirect == "" || state == "" {
		t.Fatalf("consent url missing redirect or state: %s", consent)
	}

	resp, err := http.Get(redirect + "?state=" + url.QueryEscape(state) + "&code=code-123")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	resp.Body.Close()

	<-done
	if loginErr != nil {
		t.Fatalf("login: %v", loginErr)
	}
	if token != "tok-abc" {
		t.Errorf("token = %q, want tok-abc", token)
	}
	if gotForm.Get("code") != "code-123" {
		t.Errorf("exchanged code = %q", gotForm.Get("code"))
	}
	if gotForm.Get("grant_type") != "authorization_code" {
		t.Errorf("grant_type = %q", gotForm.Get("grant_type"))
	}
}

func TestLoginDeniedConsent(t *testing.T) {
	f, printed := testFlow(t, "https://token.invalid/")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := f.Login(ctx)
		done <- err
	}()

	consent := consentURL(t, <-printed)
	q := consent.Query()
	resp, err := http.Get(q.Get("redirect_uri") + "?state=" + url.QueryEscape(q.Get("state")) + "&error=access_denied")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	resp.Body.Close()

	if err := <-done; err == nil || !strings.Contains(err.Error(), "consent denied") {
		t.Fatalf("err = %v, want consent denied", err)
	}
}

func TestLoginStateMismatch(t *testing.T) {
	f, printed := testFlow(t, "https://token.invalid/")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := f.Login(ctx)
		done <- err
	}()

	consent := consentURL(t, <-printed)
	resp, err := http.Get(consent.Query().Get("redirect_uri") + "?state=wrong&code=code-123")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	resp.Body.Close()

	if err := <-done; err == nil || !strings.Contains(err.Error(), "state mismatch") {
		t.Fatalf("err = %v, want state mismatch", err)
	}
}

func TestLoginRequiresClient(t *testing.T) {
	f := NewFlow("", "")
	if _, err := f.Login(context.Background()); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}
