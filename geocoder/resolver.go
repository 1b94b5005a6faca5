package geocoder

import (
	"strings"

	"github.com/apex/log"
)

// AddressNotFound is returned whenever the external geocoder cannot
// produce a usable address. Resolve never fails outward.
const AddressNotFound = "Address not found"

// Resolver turns coordinates into a human-readable address with a hard
// fallback literal.
type Resolver struct {
	geocoder ReverseGeocoder
}

// NewResolver wraps a reverse-geocoding dependency.
func NewResolver(g ReverseGeocoder) *Resolver {
	return &Resolver{geocoder: g}
}

// Resolve returns a human-friendly address for the coordinates. All
// failures (network, rate limit, parse, empty result) degrade to
// AddressNotFound.
func (r *Resolver) Resolve(lat, lon float64) string {
	place, err := r.geocoder.ReverseGeocode(lat, lon)
	if err != nil {
		log.WithError(err).Warnf("reverse geocoding failed for (%.6f, %.6f)", lat, lon)
		return AddressNotFound
	}
	if place == nil {
		return AddressNotFound
	}

	if addr := FormatAddress(place); addr != "" {
		return addr
	}
	if strings.TrimSpace(place.DisplayName) != "" {
		return place.DisplayName
	}
	return AddressNotFound
}

// FormatAddress builds a ", "-joined address from structured fields,
// preferring, in order: a named place, house number + street, the most
// specific area field, state, postal code, country. Returns "" when no
// structured field is usable.
func FormatAddress(place *Place) string {
	a := place.Address
	var parts []string

	if named := firstNonEmpty(place.Name, a.Amenity, a.Building, a.Shop, a.Tourism); named != "" {
		parts = append(parts, named)
	}
	if a.Road != "" {
		if a.HouseNumber != "" {
			parts = append(parts, a.HouseNumber+" "+a.Road)
		} else {
			parts = append(parts, a.Road)
		}
	}
	if area := firstNonEmpty(a.Neighbourhood, a.Suburb, a.District, a.City, a.Town, a.Village); area != "" {
		parts = append(parts, area)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	if a.Postcode != "" {
		parts = append(parts, a.Postcode)
	}
	if a.Country != "" {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}

func firstNonEmpty(strs ...string) string {
	for _, s := range strs {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
