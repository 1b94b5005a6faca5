// Package spatial holds the pure in-memory geospatial queries: radius
// filtering and density clustering over a caller-supplied snapshot of
// located reports. Nothing here takes locks or touches shared state.
package spatial

import (
	"nagrik-nivedan/geo"
	"nagrik-nivedan/models"
)

// Nearby returns the reports within radiusKm of center, inclusive at
// the boundary, each annotated with its great-circle distance. Input
// order is preserved.
func Nearby(center geo.Point, radiusKm float64, reports []models.LocatedReport) []models.NearbyComplaint {
	out := make([]models.NearbyComplaint, 0)
	for _, r := range reports {
		d := geo.DistanceKm(center, geo.Point{Lat: r.Latitude, Lon: r.Longitude})
		if d <= radiusKm {
			out = append(out, models.NearbyComplaint{
				ID:         r.ID,
				Latitude:   r.Latitude,
				Longitude:  r.Longitude,
				IssueType:  r.IssueType,
				Status:     r.Status,
				Priority:   r.Priority,
				DistanceKm: d,
			})
		}
	}
	return out
}
