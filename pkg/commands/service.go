package commands

import (
	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/auth"
	"tableflip.dev/tempo/pkg/gcal"
	"tableflip.dev/tempo/pkg/store"
)

// newService assembles the event service from the local store, the
// stored token, and the configured calendar account.
func newService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	sess, err := auth.LoadSession()
	if err != nil {
		return nil, err
	}

	svc := &app.Service{Persistence: p, Session: sess}
	if cfg.GoogleCalendarID != "" {
		svc.Remote = gcal.New(cfg.GoogleCalendarID, cfg.GoogleAPIKey, sess)
	}
	return svc, nil
}
