package gcal

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Kind classifies API failures for callers that need to branch.
type Kind int

const (
	// KindFetch is a network or provider failure during a read.
	// Recoverable: callers degrade to an empty result for this source.
	KindFetch Kind = iota
	// KindUnauthorized means the bearer token was rejected. The stored
	// token is not cleared automatically.
	KindUnauthorized
	// KindProvider is any other non-2xx response.
	KindProvider
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindUnauthorized:
		return "unauthorized"
	case KindProvider:
		return "provider"
	}
	return "unknown"
}

// APIError is a classified remote calendar failure.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gcal: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("gcal: %s: %s", e.Kind, e.Message)
}

// IsUnauthorized reports whether err is a rejected-token failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// IsFetchError reports whether err is a recoverable read failure.
func IsFetchError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindFetch
}

// classify maps an API client failure into the local taxonomy: a
// rejected token is unauthorized, any other provider response keeps
// its status, and transport errors count as fetch failures.
func classify(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = "request failed"
		}
		if gerr.Code == http.StatusUnauthorized {
			return &APIError{Kind: KindUnauthorized, Status: gerr.Code, Message: msg}
		}
		return &APIError{Kind: KindProvider, Status: gerr.Code, Message: msg}
	}
	return &APIError{Kind: KindFetch, Message: err.Error()}
}

// asFetchError downgrades read-path failures so callers can treat every
// unreadable source the same way. Unauthorized reads keep their kind;
// the caller may want to prompt for a reconnect.
func asFetchError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindProvider {
		return &APIError{Kind: KindFetch, Status: apiErr.Status, Message: apiErr.Message}
	}
	return err
}
