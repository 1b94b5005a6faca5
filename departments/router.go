// Package departments maps issue-type labels to the owning municipal
// department.
package departments

import "strings"

// The six departments every report routes to.
const (
	PublicWorks = "Public Works"
	Water       = "Water Department"
	Traffic     = "Traffic Department"
	Sanitation  = "Sanitation"
	Health      = "Health Department"
	Education   = "Education Department"
)

// DefaultDepartment owns anything the table does not recognize.
const DefaultDepartment = PublicWorks

// routingTable covers the current model's six labels plus the legacy
// and alternate labels seen in historical reports, grouped by
// department.
var routingTable = map[string]string{
	// Public Works
	"potholes":         PublicWorks,
	"pothole":          PublicWorks,
	"street_lights":    PublicWorks,
	"street_light":     PublicWorks,
	"broken_sidewalks": PublicWorks,
	"sidewalk_damage":  PublicWorks,
	"road_damage":      PublicWorks,
	"bridge_issue":     PublicWorks,
	"street_repair":    PublicWorks,

	// Water Department
	"water_leakage": Water,
	"water_leak":    Water,
	"drainage":      Water,
	"sewage_issue":  Water,
	"water_supply":  Water,

	// Traffic Department
	"traffic_signals": Traffic,
	"traffic_signal":  Traffic,
	"traffic_sign":    Traffic,
	"traffic_light":   Traffic,
	"road_marking":    Traffic,

	// Sanitation
	"garbage":          Sanitation,
	"waste_management": Sanitation,
	"cleanliness":      Sanitation,

	// Health Department
	"health_issue":      Health,
	"medical_emergency": Health,
	"sanitation_health": Health,

	// Education Department
	"school_issue":       Education,
	"education_facility": Education,

	"other": PublicWorks,
}

// Route returns the owning department for an issue-type label. It is
// total: unknown or empty labels route to Public Works.
func Route(issueType string) string {
	if dept, ok := routingTable[strings.ToLower(strings.TrimSpace(issueType))]; ok {
		return dept
	}
	return DefaultDepartment
}

// All returns the closed department set in routing order.
func All() []string {
	return []string{PublicWorks, Water, Traffic, Sanitation, Health, Education}
}
