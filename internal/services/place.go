package services

import "math"

// Place is a candidate stop collected from the upstream providers. The route
// optimizer only reads identity and coordinates; every other field is passed
// through to the composer untouched.
type Place struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Category  string  `json:"category,omitempty"` // attraction | hotel | restaurant
	Image     string  `json:"image,omitempty"`
	Latitude  float64 `json:"mapy"`
	Longitude float64 `json:"mapx"`

	// HasCoords survives cache serialization so cached candidates keep
	// their validity without re-geocoding.
	HasCoords bool `json:"has_coords"`
}

// ValidCoordinates reports whether the place may enter the optimizer.
func (p Place) ValidCoordinates() bool {
	if !p.HasCoords {
		return false
	}
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) ||
		math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// cacheKey identifies a place across requests: stable provider ID when the
// upstream gave one, display name otherwise.
func (p Place) cacheKey() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}
