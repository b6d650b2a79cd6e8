package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/celerix-dev/ivr-reports/internal/metrics"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

const (
	loginPath   = "/api/auth/login"
	recordsPath = "/api/ivr/data"

	defaultTimeout = 30 * time.Second
)

// Client talks to the IVR backend over HTTP. It implements Backend.
// Calls are never retried: every failure is final for that call.
type Client struct {
	baseURL string
	rest    *resty.Client
}

// New constructs a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		rest: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(defaultTimeout).
			SetLogger(zerologAdapter{}),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts the credentials to the login endpoint.
// Any non-2xx answer is ErrInvalidCredentials. The caller owns the session.
func (c *Client) Login(ctx context.Context, username, password string) (*schema.User, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials{Username: username, Password: password}).
		Post(loginPath)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !resp.IsSuccess() {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, &StatusError{Op: "login", StatusCode: resp.StatusCode(), Err: ErrInvalidCredentials}
	}

	var user schema.User
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("login: decode user: %w", err)
	}
	if !user.Valid() {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("login: response has no user id")
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return &user, nil
}

// FetchRecords loads the records matching filters. Only present filter fields
// are sent; an empty FilterCriteria produces a request with no query string.
func (c *Client) FetchRecords(ctx context.Context, filters schema.FilterCriteria) ([]schema.InteractionRecord, error) {
	start := time.Now()
	defer func() { metrics.FetchDuration.Observe(time.Since(start).Seconds()) }()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(filters.QueryParams()).
		Get(recordsPath)
	if err != nil {
		metrics.FetchesTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if !resp.IsSuccess() {
		metrics.FetchesTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, &StatusError{Op: "fetch records", StatusCode: resp.StatusCode(), Err: ErrFetchFailed}
	}

	var records []schema.InteractionRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		metrics.FetchesTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: decode records: %v", ErrFetchFailed, err)
	}
	if records == nil {
		records = []schema.InteractionRecord{}
	}

	warnDuplicateIDs(records)
	metrics.FetchesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return records, nil
}

// warnDuplicateIDs logs when a batch breaks the unique-id contract.
// The batch is still returned untouched.
func warnDuplicateIDs(records []schema.InteractionRecord) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			log.Warn().Str("id", r.ID).Msg("duplicate record id in batch")
			continue
		}
		seen[r.ID] = struct{}{}
	}
}

// zerologAdapter routes resty's own logging through zerolog.
type zerologAdapter struct{}

func (zerologAdapter) Errorf(format string, v ...interface{}) { log.Error().Msgf(format, v...) }
func (zerologAdapter) Warnf(format string, v ...interface{}) { log.Warn().Msgf(format, v...) }
func (zerologAdapter) Debugf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }
