// Package export renders interaction records as the CSV report.
package export

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/celerix-dev/ivr-reports/internal/datefmt"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

// ErrNothingToExport is returned for an empty record set.
var ErrNothingToExport = errors.New("no data to export")

// BOM makes spreadsheet tools read the file as UTF-8.
const BOM = "\uFEFF"

// Header is the first line of every report.
var Header = []string{
	"No.",
	"Fecha/Hora Inicio",
	"Fecha/Hora Fin",
	"Identificador Canal",
	"Identificación Cliente",
	"Menú Principal",
	"SubMenu",
	"Submenu 2",
	"Canal",
	"Id Interacción",
}

// nullText is what a missing free-text value prints as.
const nullText = "null"

// EscapeCSV quotes v when it contains a comma, a double quote or a newline.
func EscapeCSV(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Build returns the full report for records.
func Build(records []schema.InteractionRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(strings.Join(Header, ","))
	for _, r := range records {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row(r), ","))
	}
	return []byte(b.String()), nil
}

func row(r schema.InteractionRecord) []string {
	userID, ok := r.ChannelUserIDString()
	if !ok {
		userID = nullText
	}
	return []string{
		EscapeCSV(r.ID),
		EscapeCSV(datefmt.FormatForExport(r.StartTime)),
		EscapeCSV(datefmt.FormatForExport(r.EndTime)),
		EscapeCSV(userID),
		EscapeCSV(orNull(r.CustomerIdentification)),
		EscapeCSV(menu(r.Menu)),
		EscapeCSV(menu(r.SubMenu)),
		EscapeCSV(menu(r.SubMenu2)),
		EscapeCSV(orNull(r.Channel)),
		EscapeCSV(orNull(r.InteractionID)),
	}
}

// menu columns print a single space when empty.
func menu(p *string) string {
	return schema.StrOr(p, " ")
}

func orNull(p *string) string {
	if v, ok := schema.Str(p); ok {
		return v
	}
	return nullText
}

// Filename names the report produced on day t.
func Filename(t time.Time) string {
	return "reporte_ivr_" + t.Format("2006-01-02") + ".csv"
}
