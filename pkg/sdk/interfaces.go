// Package sdk provides the client-side library for the IVR backend API:
// the login gateway and the interaction records endpoint.
package sdk

import (
	"context"
	"errors"

	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

var (
	// ErrInvalidCredentials is returned when the login endpoint rejects the credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrFetchFailed is returned when interaction records could not be loaded.
	ErrFetchFailed = errors.New("error loading data")
)

// StatusError carries the HTTP status behind a failed call.
// Its message is the wrapped sentinel's, so it can be shown to a user as is.
type StatusError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string { return e.Err.Error() }

// Unwrap returns the sentinel for errors.Is.
func (e *StatusError) Unwrap() error { return e.Err }

// --- Functional Interfaces (Interface Segregation) ---

// Authenticator exchanges credentials for a user.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*schema.User, error)
}

// RecordFetcher loads interaction records.
type RecordFetcher interface {
	FetchRecords(ctx context.Context, filters schema.FilterCriteria) ([]schema.InteractionRecord, error)
}

// Backend is everything the reports front ends need from the API.
type Backend interface {
	Authenticator
	RecordFetcher
}
