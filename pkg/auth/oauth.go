package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CalendarScope grants read/write access to calendar events.
const CalendarScope = "https://www.googleapis.com/auth/calendar.events"

// Flow runs the interactive OAuth consent flow on a loopback listener.
type Flow struct {
	Config *oauth2.Config

	// Out receives the consent URL the user must open.
	Out io.Writer
}

// NewFlow returns a Flow for the given OAuth client against Google's
// endpoints.
func NewFlow(clientID, clientSecret string) *Flow {
	return &Flow{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{CalendarScope},
		},
		Out: os.Stdout,
	}
}

// Login walks the user through consent and returns the granted bearer
// token. It blocks until the loopback redirect arrives or ctx ends.
func (f *Flow) Login(ctx context.Context) (string, error) {
	if f.Config == nil || f.Config.ClientID == "" || f.Config.ClientSecret == "" {
		return "", errors.New("auth: oauth client not configured")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("auth: loopback listen: %w", err)
	}
	defer listener.Close()

	// The redirect port is only known once the listener is up.
	cfg := *f.Config
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())

	state, err := randomState()
	if err != nil {
		return "", err
	}

	consentURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if f.Out != nil {
		fmt.Fprintf(f.Out, "Open this URL to connect your calendar:\n\n  %s\n\n", consentURL)
	}

	code, err := waitForCode(ctx, listener, state)
	if err != nil {
		return "", err
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("auth: token exchange: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("auth: empty access token in response")
	}
	return tok.AccessToken, nil
}

func waitForCode(ctx context.Context, listener net.Listener, state string) (string, error) {
	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- result{err: errors.New("auth: state mismatch")}
			return
		}
		if errCode := q.Get("error"); errCode != "" {
			http.Error(w, "consent denied", http.StatusBadRequest)
			results <- result{err: fmt.Errorf("auth: consent denied: %s", errCode)}
			return
		}
		fmt.Fprintln(w, "Connected. You can close this tab.")
		results <- result{code: q.Get("code")}
	})}

	go srv.Serve(listener)
	defer srv.Close()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-results:
		if res.err != nil {
			return "", res.err
		}
		if res.code == "" {
			return "", errors.New("auth: no authorization code in redirect")
		}
		return res.code, nil
	}
}

func randomState() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("auth: random state: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
