package schema

import "strings"

// AllChannels is the channel selector value meaning "no channel constraint".
const AllChannels = "todos"

// FilterCriteria narrows a records fetch. Empty fields mean no constraint.
type FilterCriteria struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Channel   string `json:"canal,omitempty"`
}

// Normalize trims every field and drops the "all channels" selector so it is
// never sent to the backend.
func (f FilterCriteria) Normalize() FilterCriteria {
	out := FilterCriteria{
		StartDate: strings.TrimSpace(f.StartDate),
		EndDate:   strings.TrimSpace(f.EndDate),
		Channel:   strings.TrimSpace(f.Channel),
	}
	if strings.EqualFold(out.Channel, AllChannels) {
		out.Channel = ""
	}
	return out
}

// HasActive reports whether any constraint is set.
func (f FilterCriteria) HasActive() bool {
	n := f.Normalize()
	return n.StartDate != "" || n.EndDate != "" || n.Channel != ""
}

// QueryParams returns the backend query parameters for the present fields only.
func (f FilterCriteria) QueryParams() map[string]string {
	n := f.Normalize()
	params := make(map[string]string, 3)
	if n.StartDate != "" {
		params["startDate"] = n.StartDate
	}
	if n.EndDate != "" {
		params["endDate"] = n.EndDate
	}
	if n.Channel != "" {
		params["canal"] = n.Channel
	}
	return params
}
