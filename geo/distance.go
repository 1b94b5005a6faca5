package geo

import (
	"github.com/golang/geo/s2"
)

// Mean earth radius in kilometers, matching the value used by common
// geodesic libraries.
const earthRadiusKm = 6371.009

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceKm returns the great-circle distance between two points in
// kilometers. It is symmetric, non-negative and exactly zero for
// identical points.
func DistanceKm(a, b Point) float64 {
	if a == b {
		return 0
	}
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusKm
}
