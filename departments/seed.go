package departments

import "nagrik-nivedan/models"

// Seed returns the department reference records inserted at first
// startup when the departments table is empty.
func Seed() []models.Department {
	return []models.Department{
		{
			Name:        PublicWorks,
			Latitude:    26.4670,
			Longitude:   80.3497,
			IssueTypes:  `["potholes", "street_lights", "broken_sidewalks"]`,
			ContactInfo: "publicworks@kanpurnagar.gov.in",
		},
		{
			Name:        Water,
			Latitude:    26.4728,
			Longitude:   80.3218,
			IssueTypes:  `["water_leakage", "drainage"]`,
			ContactInfo: "jalkal@kanpurnagar.gov.in",
		},
		{
			Name:        Traffic,
			Latitude:    26.4499,
			Longitude:   80.3319,
			IssueTypes:  `["traffic_signals"]`,
			ContactInfo: "traffic@kanpurnagar.gov.in",
		},
		{
			Name:        Sanitation,
			Latitude:    26.4609,
			Longitude:   80.3313,
			IssueTypes:  `["garbage"]`,
			ContactInfo: "sanitation@kanpurnagar.gov.in",
		},
		{
			Name:        Health,
			Latitude:    26.4635,
			Longitude:   80.3504,
			IssueTypes:  `["health_issue"]`,
			ContactInfo: "health@kanpurnagar.gov.in",
		},
		{
			Name:        Education,
			Latitude:    26.4825,
			Longitude:   80.3402,
			IssueTypes:  `["school_issue"]`,
			ContactInfo: "education@kanpurnagar.gov.in",
		},
	}
}
