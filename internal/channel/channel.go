// Package channel maps free-text channel labels onto the known contact channels.
package channel

import (
	"strings"

	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

// Category is a normalized contact channel.
type Category string

const (
	Call      Category = "call"
	WhatsApp  Category = "whatsapp"
	Messenger Category = "messenger"
	Unknown   Category = "unknown"
)

// UnknownLabel is shown for a missing channel.
const UnknownLabel = "Desconocido"

// Badge is what a row shows for its channel.
type Badge struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Classify assigns a category by the first matching rule. The order matters:
// a label containing both "call" and "whatsapp" is a call.
func Classify(raw *string) Badge {
	label := schema.StrOr(raw, UnknownLabel)
	norm := strings.ToLower(strings.TrimSpace(label))

	if strings.Contains(norm, "call") || strings.Contains(norm, "llamadas") {
		return Badge{Label: "Llamadas", Category: Call}
	}
	if strings.Contains(norm, "whatsapp") {
		return Badge{Label: "WhatsApp", Category: WhatsApp}
	}
	if strings.Contains(norm, "facebook") {
		return Badge{Label: "Facebook", Category: Messenger}
	}
	return Badge{Label: label, Category: Unknown}
}

// Stats are the per-channel counters shown above the table.
type Stats struct {
	Calls     int `json:"llamadas"`
	WhatsApp  int `json:"whatsapp"`
	Messenger int `json:"messenger"`
}

// Count tallies records by category using the same rules as Classify.
// Records without a channel are not counted.
func Count(records []schema.InteractionRecord) Stats {
	var s Stats
	for _, r := range records {
		if r.Channel == nil {
			continue
		}
		switch Classify(r.Channel).Category {
		case Call:
			s.Calls++
		case WhatsApp:
			s.WhatsApp++
		case Messenger:
			s.Messenger++
		}
	}
	return s
}
