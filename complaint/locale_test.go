package complaint

import "testing"

func TestIndianAddressParser(t *testing.T) {
	p := NewIndianAddressParser()

	testCases := []struct {
		name      string
		address   string
		wantCity  string
		wantState string
	}{
		{
			name:      "state match takes preceding part as city",
			address:   "Jajmau, Kanpur, Kanpur Nagar, Uttar Pradesh, 208015, India",
			wantCity:  "Kanpur Nagar",
			wantState: "Uttar Pradesh",
		},
		{
			name:      "state match is case-insensitive",
			address:   "Andheri, Mumbai, maharashtra, India",
			wantCity:  "Mumbai",
			wantState: "Maharashtra",
		},
		{
			name:      "state at first position keeps default city",
			address:   "Uttar Pradesh, India",
			wantCity:  "Kanpur",
			wantState: "Uttar Pradesh",
		},
		{
			name:      "positional fallback without state match",
			address:   "MG Road, Bengaluru City, 560001, Bharat",
			wantCity:  "Bengaluru City",
			wantState: "560001",
		},
		{
			name:      "short fragment keeps defaults",
			address:   "Address not found",
			wantCity:  "Kanpur",
			wantState: "Uttar Pradesh",
		},
		{
			name:      "empty keeps defaults",
			address:   "",
			wantCity:  "Kanpur",
			wantState: "Uttar Pradesh",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			city, state := p.Parse(tc.address)
			if city != tc.wantCity || state != tc.wantState {
				t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
					tc.address, city, state, tc.wantCity, tc.wantState)
			}
		})
	}
}

func TestDisplayIssueType(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"potholes", "Potholes"},
		{"water_leakage", "Water Leakage"},
		{"broken-sidewalks", "Broken Sidewalks"},
		{"STREET_LIGHTS", "Street Lights"},
		{"", "Civic"},
	}
	for _, tc := range testCases {
		if got := displayIssueType(tc.in); got != tc.want {
			t.Errorf("displayIssueType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDescribeIssueGenericFallback(t *testing.T) {
	got := describeIssue("graffiti", "", "Mall Road, Kanpur")
	want := "A graffiti issue has been observed at Mall Road, Kanpur and requires attention from the concerned department."
	if got != want {
		t.Errorf("describeIssue = %q, want %q", got, want)
	}
}
