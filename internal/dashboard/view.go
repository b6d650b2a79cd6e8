package dashboard

import (
	"errors"
	"strings"

	"github.com/celerix-dev/ivr-reports/internal/channel"
	"github.com/celerix-dev/ivr-reports/internal/datefmt"
	"github.com/celerix-dev/ivr-reports/internal/export"
	"github.com/celerix-dev/ivr-reports/internal/search"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
	"github.com/celerix-dev/ivr-reports/pkg/sdk"
)

const placeholder = "-"

// Tone is the colour family of a status badge.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneDefault Tone = "default"
)

// StatusBadge renders the interaction id read as a status word.
type StatusBadge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

var statusTones = map[string]Tone{
	"completado": ToneSuccess,
	"pendiente":  ToneWarning,
	"fallido":    ToneError,
}

// Status builds the badge for raw. Nil or empty shows the placeholder.
func Status(raw *string) StatusBadge {
	v, ok := schema.Str(raw)
	if !ok || v == "" {
		return StatusBadge{Label: placeholder, Tone: ToneDefault}
	}
	tone, ok := statusTones[strings.ToLower(v)]
	if !ok {
		tone = ToneDefault
	}
	return StatusBadge{Label: v, Tone: tone}
}

// Row is one table line, ready to print.
type Row struct {
	ID            string        `json:"id"`
	Start         string        `json:"start"`
	End           string        `json:"end"`
	ChannelUserID string        `json:"channelUserId"`
	CustomerID    string        `json:"customerId"`
	Menu          string        `json:"menu"`
	SubMenu       string        `json:"subMenu"`
	SubMenu2      string        `json:"subMenu2"`
	Channel       channel.Badge `json:"channel"`
	Status        StatusBadge   `json:"status"`
}

// NewRow formats r for the table.
func NewRow(r schema.InteractionRecord) Row {
	userID, ok := r.ChannelUserIDString()
	if !ok {
		userID = placeholder
	}
	return Row{
		ID:            r.ID,
		Start:         datefmt.FormatForDisplay(r.StartTime),
		End:           datefmt.FormatForDisplay(r.EndTime),
		ChannelUserID: userID,
		CustomerID:    schema.StrOr(r.CustomerIdentification, placeholder),
		Menu:          schema.StrOr(r.Menu, placeholder),
		SubMenu:       schema.StrOr(r.SubMenu, placeholder),
		SubMenu2:      schema.StrOr(r.SubMenu2, placeholder),
		Channel:       channel.Classify(r.Channel),
		Status:        Status(r.InteractionID),
	}
}

// View is a snapshot of everything the screen shows.
type View struct {
	User       *schema.User          `json:"user"`
	Rows       []Row                 `json:"rows"`
	Page       search.Summary        `json:"page"`
	Query      string                `json:"query"`
	Stats      channel.Stats         `json:"stats"`
	Filters    schema.FilterCriteria `json:"filters"`
	HasFilters bool                  `json:"hasFilters"`
	Loading    bool                  `json:"loading"`
	Error      string                `json:"error,omitempty"`
}

// View renders the current page under the current query.
func (a *App) View() View {
	a.mu.RLock()
	records := a.records
	filters := a.filters
	errMsg := a.errMsg
	loading := a.inFlight > 0
	a.mu.RUnlock()

	page, summary := a.pager.View(records)
	rows := make([]Row, 0, len(page))
	for _, r := range page {
		rows = append(rows, NewRow(r))
	}

	return View{
		User:       a.auth.User(),
		Rows:       rows,
		Page:       summary,
		Query:      a.pager.Query(),
		Stats:      channel.Count(records),
		Filters:    filters,
		HasFilters: filters.HasActive(),
		Loading:    loading,
		Error:      errMsg,
	}
}

// Message turns an error into the text shown to a user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, sdk.ErrInvalidCredentials):
		return "Credenciales inválidas"
	case errors.Is(err, export.ErrNothingToExport):
		return "No hay datos para exportar"
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, ErrSessionEnded):
		return "Sesión no iniciada"
	case errors.Is(err, sdk.ErrFetchFailed):
		return "Error al cargar datos"
	default:
		return "Error de conexión"
	}
}
