package schema

import "strconv"

// InteractionRecord is one IVR interaction as returned by the records endpoint.
// Every field except ID may be null on the wire; nullable fields are pointers
// and should be read through the accessors below.
type InteractionRecord struct {
	ID                     string  `json:"id"`
	StartTime              *string `json:"ivrDateStart"`
	EndTime                *string `json:"ivrDateEnd"`
	ChannelUserID          *int64  `json:"ivrUserId"`
	CustomerIdentification *string `json:"ivrIdentificacion"`
	Menu                   *string `json:"ivrMenu"`
	SubMenu                *string `json:"ivrSubMenu"`
	SubMenu2               *string `json:"ivrSubMenu3"`
	Channel                *string `json:"ivrCanal"`
	InteractionID          *string `json:"ivrInteractionId"`
}

// Str dereferences p, reporting false for nil.
func Str(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

// StrOr returns *p, or def when p is nil or empty.
func StrOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

// ChannelUserIDString renders the channel user id in decimal.
func (r InteractionRecord) ChannelUserIDString() (string, bool) {
	if r.ChannelUserID == nil {
		return "", false
	}
	return strconv.FormatInt(*r.ChannelUserID, 10), true
}

// SearchableFields returns the non-null fields free-text search looks at,
// in a fixed order.
func (r InteractionRecord) SearchableFields() []string {
	out := make([]string, 0, 7)
	if v, ok := Str(r.Channel); ok {
		out = append(out, v)
	}
	if v, ok := r.ChannelUserIDString(); ok {
		out = append(out, v)
	}
	for _, p := range []*string{r.CustomerIdentification, r.Menu, r.SubMenu, r.SubMenu2, r.InteractionID} {
		if v, ok := Str(p); ok {
			out = append(out, v)
		}
	}
	return out
}

// Ptr returns a pointer to v. Handy for building records in code and tests.
func Ptr[T any](v T) *T {
	return &v
}
