// Package dashboard holds the state behind the reports screen: who is logged
// in, the loaded record set, the active filters and the table position.
// Front ends (the CLI and the HTTP daemon) drive it and render View.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/celerix-dev/ivr-reports/internal/channel"
	"github.com/celerix-dev/ivr-reports/internal/export"
	"github.com/celerix-dev/ivr-reports/internal/metrics"
	"github.com/celerix-dev/ivr-reports/internal/search"
	"github.com/celerix-dev/ivr-reports/internal/session"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
	"github.com/celerix-dev/ivr-reports/pkg/sdk"
)

var (
	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionEnded is returned by a load whose session was closed while
	// the fetch was running. Its result is dropped.
	ErrSessionEnded = errors.New("session ended during load")
)

// App is the dashboard state. It is safe for concurrent use.
type App struct {
	backend sdk.Backend
	auth    *session.AuthState
	pager   *search.Pager
	now     func() time.Time

	mu       sync.RWMutex
	records  []schema.InteractionRecord
	filters  schema.FilterCriteria
	errMsg   string
	inFlight int

	// epoch counts logins and logouts; a load only applies its result
	// under the session it started in.
	epoch uint64
}

// Option configures an App.
type Option func(*App)

// WithPageSize sets the table page size.
func WithPageSize(n int) Option {
	return func(a *App) { a.pager = search.NewPager(n) }
}

// WithClock replaces time.Now, used for export file names.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New returns an App over backend. The session already held by auth, if any,
// is picked up as is; call Load to fetch its records.
func New(backend sdk.Backend, auth *session.AuthState, opts ...Option) *App {
	a := &App{
		backend: backend,
		auth:    auth,
		pager:   search.NewPager(search.DefaultPageSize),
		now:     time.Now,
		records: []schema.InteractionRecord{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// User returns the logged-in user, or nil.
func (a *App) User() *schema.User {
	return a.auth.User()
}

// LoggedIn reports whether a session is active.
func (a *App) LoggedIn() bool {
	return a.auth.LoggedIn()
}

// Login authenticates against the backend, stores the session and performs
// the initial load. A failed initial load does not undo the login; it shows
// up in View().Error.
func (a *App) Login(ctx context.Context, username, password string) (*schema.User, error) {
	u, err := a.backend.Login(ctx, username, password)
	if err != nil {
		log.Info().Err(err).Str("username", username).Msg("login rejected")
		return nil, err
	}
	if err := a.auth.Login(*u); err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.resetLocked()
	a.mu.Unlock()
	a.pager.SetQuery("")
	log.Info().Str("user_id", u.ID).Msg("logged in")

	if err := a.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("initial load failed")
	}
	return u, nil
}

// Logout clears the session and forgets everything loaded under it.
func (a *App) Logout() error {
	err := a.auth.Logout()

	a.mu.Lock()
	a.resetLocked()
	a.mu.Unlock()

	a.pager.SetQuery("")
	return err
}

// resetLocked drops everything loaded under the current session and starts a
// new one. Loads still in flight will discard their results.
func (a *App) resetLocked() {
	a.epoch++
	a.records = []schema.InteractionRecord{}
	a.filters = schema.FilterCriteria{}
	a.errMsg = ""
	metrics.RecordsLoaded.Set(0)
}

// Filters returns the active filters.
func (a *App) Filters() schema.FilterCriteria {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.filters
}

// SetFilters replaces the filters and reloads.
func (a *App) SetFilters(ctx context.Context, f schema.FilterCriteria) error {
	a.mu.Lock()
	a.filters = f.Normalize()
	a.mu.Unlock()
	return a.Load(ctx)
}

// ClearFilters drops every filter and reloads.
func (a *App) ClearFilters(ctx context.Context) error {
	return a.SetFilters(ctx, schema.FilterCriteria{})
}

// Load fetches the records for the active filters and replaces the loaded set.
// On failure the previous set stays and the error message is recorded.
// Concurrent loads are not ordered: whichever finishes last wins. A load
// that outlives its session (logout, or another login) changes nothing.
func (a *App) Load(ctx context.Context) error {
	if !a.auth.LoggedIn() {
		return ErrNotLoggedIn
	}

	a.mu.Lock()
	filters := a.filters
	started := a.epoch
	a.errMsg = ""
	a.inFlight++
	a.mu.Unlock()

	records, err := a.backend.FetchRecords(ctx, filters)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight--
	if started != a.epoch || !a.auth.LoggedIn() {
		log.Debug().Err(err).Msg("dropping load from an ended session")
		return ErrSessionEnded
	}
	if err != nil {
		a.errMsg = Message(err)
		log.Error().Err(err).Interface("filters", filters).Msg("failed to load records")
		return err
	}
	a.records = records
	a.pager.Reset()
	metrics.RecordsLoaded.Set(float64(len(records)))
	log.Debug().Int("records", len(records)).Interface("filters", filters).Msg("records loaded")
	return nil
}

// Records returns the full loaded set.
func (a *App) Records() []schema.InteractionRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.records
}

// Query returns the search query.
func (a *App) Query() string {
	return a.pager.Query()
}

// SetQuery changes the search query and goes back to page 1.
func (a *App) SetQuery(q string) {
	a.pager.SetQuery(q)
}

// GoTo moves the table to page. Out of range pages are ignored.
func (a *App) GoTo(page int) bool {
	return a.pager.GoTo(a.Records(), page)
}

// Next moves one page forward.
func (a *App) Next() bool {
	return a.pager.Next(a.Records())
}

// Prev moves one page back.
func (a *App) Prev() bool {
	return a.pager.Prev(a.Records())
}

// Stats counts the loaded records per channel.
func (a *App) Stats() channel.Stats {
	return channel.Count(a.Records())
}

// Export writes the full loaded set, not just the visible page, to sink
// under today's report name.
func (a *App) Export(sink export.Sink) (string, error) {
	if !a.auth.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	name := export.Filename(a.now())
	return name, export.Export(a.Records(), name, sink)
}
