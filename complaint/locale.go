package complaint

import "strings"

// AddressParser extracts a display city and state from a resolved
// address string. The heuristics are locale-specific, so alternate
// locales can plug in their own parser.
type AddressParser interface {
	Parse(address string) (city, state string)
}

// indianStates is the recognized state and union territory vocabulary
// for the default locale.
var indianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar",
	"Chhattisgarh", "Goa", "Gujarat", "Haryana", "Himachal Pradesh",
	"Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra",
	"Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal", "Delhi",
	"Jammu and Kashmir", "Ladakh", "Chandigarh", "Puducherry",
}

// IndianAddressParser parses comma-separated addresses the way the
// Nominatim formatter emits them for India.
type IndianAddressParser struct {
	DefaultCity  string
	DefaultState string
}

// NewIndianAddressParser returns the default locale parser.
func NewIndianAddressParser() *IndianAddressParser {
	return &IndianAddressParser{
		DefaultCity:  "Kanpur",
		DefaultState: "Uttar Pradesh",
	}
}

// Parse splits the address on commas and scans for a recognized state
// name; the part immediately before the match is taken as the city.
// Without a match it falls back to positional guesses and finally to
// the locale defaults. Best-effort by design.
func (p *IndianAddressParser) Parse(address string) (city, state string) {
	city, state = p.DefaultCity, p.DefaultState

	raw := strings.Split(address, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return city, state
	}

	for i, part := range parts {
		for _, s := range indianStates {
			if strings.EqualFold(part, s) {
				state = s
				if i > 0 {
					city = parts[i-1]
				}
				return city, state
			}
		}
	}

	// No state matched: take fixed offsets from the end. Too few
	// parts means the address is a bare fragment or a fallback
	// literal, so keep the defaults.
	if len(parts) >= 3 {
		city = parts[len(parts)-3]
		state = parts[len(parts)-2]
	}
	return city, state
}
