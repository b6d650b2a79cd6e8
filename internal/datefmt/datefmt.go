// Package datefmt renders backend date strings for people.
//
// FormatForDisplay reads the strict "YYYY-MM-DD HH:MM:SS" shape the table
// receives. FormatForExport accepts ISO-like input for the CSV export.
// They disagree on what is valid.
package datefmt

import (
	"strconv"
	"strings"
	"time"
)

// Placeholder is printed for any date that cannot be shown.
const Placeholder = "-"

// Layout is the rendered form: DD/MM/YYYY, HH:MM:SS in 24-hour time.
const Layout = "02/01/2006, 15:04:05"

// sentinelYear prefixes the backend's "no date" value, 0000-00-00 00:00:00.
const sentinelYear = "0000"

// FormatForDisplay renders a "YYYY-MM-DD HH:MM:SS" string in local time.
func FormatForDisplay(raw *string) string {
	if raw == nil {
		return Placeholder
	}
	s := *raw
	if strings.HasPrefix(s, sentinelYear) || strings.Contains(s, "null") {
		return Placeholder
	}

	parts := strings.Split(s, " ")
	if len(parts) < 2 {
		return Placeholder
	}

	ymd, ok := numericParts(parts[0], "-")
	if !ok {
		return Placeholder
	}
	hms, ok := numericParts(parts[1], ":")
	if !ok {
		return Placeholder
	}

	t := time.Date(ymd[0], time.Month(ymd[1]), ymd[2], hms[0], hms[1], hms[2], 0, time.Local)
	return t.Format(Layout)
}

// numericParts splits s on sep and requires exactly three integers.
func numericParts(s, sep string) ([3]int, bool) {
	var out [3]int
	fields := strings.Split(s, sep)
	if len(fields) != 3 {
		return out, false
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, true
}

var (
	// Offsets are honoured and converted to local time.
	offsetLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04:05-0700",
	}
	// Everything else is read as local wall time. Fractional seconds are
	// accepted after the seconds field without being named in the layout.
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// FormatForExport renders an ISO-like timestamp for the CSV export.
// A trailing UTC marker is dropped so the wall time is kept as is.
func FormatForExport(raw *string) string {
	if raw == nil {
		return Placeholder
	}
	s := strings.TrimSuffix(strings.TrimSpace(*raw), "Z")
	if s == "" {
		return Placeholder
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(time.Local).Format(Layout)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Format(Layout)
		}
	}
	return Placeholder
}
