// Package catalog holds the clinic's fixed service menu and booking slots.
package catalog

import "strings"

// Service is a bookable service. Label is the exact display string used by
// the booking form and stored on bookings; revenue lookups match on it
// byte for byte.
type Service struct {
	Name            string `json:"name"`
	Label           string `json:"label"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Services is the clinic's menu in display order.
var Services = []Service{
	{Name: "Massagem Relaxante", Label: "Massagem Relaxante - R$ 120 (60 min)", Price: 120, DurationMinutes: 60},
	{Name: "Massagem Terapêutica", Label: "Massagem Terapêutica - R$ 180 (90 min)", Price: 180, DurationMinutes: 90},
	{Name: "Drenagem Linfática", Label: "Drenagem Linfática - R$ 150 (75 min)", Price: 150, DurationMinutes: 75},
	{Name: "Reflexologia", Label: "Reflexologia - R$ 100 (45 min)", Price: 100, DurationMinutes: 45},
	{Name: "Massagem Desportiva", Label: "Massagem Desportiva - R$ 140 (60 min)", Price: 140, DurationMinutes: 60},
	{Name: "Quick Massage", Label: "Quick Massage - R$ 80 (30 min)", Price: 80, DurationMinutes: 30},
}

// TimeSlots is the fixed booking slot enumeration: mornings 08:00-11:30 and
// afternoons 14:00-17:30, every 30 minutes.
var TimeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
	"11:00", "11:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}

// PriceFor returns the price for an exact service label. Unrecognized labels
// price at zero rather than erroring; the label is an opaque display string
// on bookings and older records may carry retired labels.
func PriceFor(label string) int {
	for _, svc := range Services {
		if svc.Label == label {
			return svc.Price
		}
	}
	return 0
}

// ShortName derives the display name from a service label: everything before
// the first " - " separator, or the whole label when there is none.
func ShortName(label string) string {
	if i := strings.Index(label, " - "); i >= 0 {
		return label[:i]
	}
	return label
}

// ValidTimeSlot reports whether t is one of the bookable slots.
func ValidTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}
