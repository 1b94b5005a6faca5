package complaint

import (
	"fmt"
	"strings"
)

// cannedDescriptions are per-issue-type description templates used when
// the reporter supplies no free text. Each takes the resolved address.
var cannedDescriptions = map[string]string{
	"potholes":         "Large potholes have formed on the road at %s, damaging vehicles and posing a serious risk to two-wheeler riders.",
	"pothole":          "Large potholes have formed on the road at %s, damaging vehicles and posing a serious risk to two-wheeler riders.",
	"street_lights":    "The street lights at %s have stopped working, leaving the stretch dark and unsafe after sunset.",
	"street_light":     "The street lights at %s have stopped working, leaving the stretch dark and unsafe after sunset.",
	"garbage":          "Garbage has been accumulating at %s without collection, producing foul smell and attracting stray animals.",
	"water_leakage":    "A continuous water leakage at %s is wasting treated water and eroding the road surface.",
	"water_leak":       "A continuous water leakage at %s is wasting treated water and eroding the road surface.",
	"traffic_signals":  "The traffic signal at %s is malfunctioning, causing confusion and a high risk of collisions at the junction.",
	"traffic_signal":   "The traffic signal at %s is malfunctioning, causing confusion and a high risk of collisions at the junction.",
	"broken_sidewalks": "The sidewalk at %s is broken and uneven, forcing pedestrians to walk on the carriageway.",
	"sidewalk_damage":  "The sidewalk at %s is broken and uneven, forcing pedestrians to walk on the carriageway.",
	"drainage":         "The drainage at %s is blocked and overflowing, flooding the surrounding area.",
}

// describeIssue selects the reporter's own text, a canned per-type
// sentence, or a generic fallback naming the issue and address.
func describeIssue(issueType, description, address string) string {
	if strings.TrimSpace(description) != "" {
		return description
	}
	if tmpl, ok := cannedDescriptions[strings.ToLower(strings.TrimSpace(issueType))]; ok {
		return fmt.Sprintf(tmpl, address)
	}
	return fmt.Sprintf("A %s issue has been observed at %s and requires attention from the concerned department.",
		strings.ToLower(displayIssueType(issueType)), address)
}

// displayIssueType converts a label like "water_leakage" to
// "Water Leakage".
func displayIssueType(issueType string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(issueType))
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	if len(words) == 0 {
		return "Civic"
	}
	return strings.Join(words, " ")
}
