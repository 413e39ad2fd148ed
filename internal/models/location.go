package models

// Location represents a geographical point defined by its latitude and longitude.
type Location struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// BoundingBox is a rectangular latitude/longitude region used as a search filter.
// Bounds are rounded to 6 decimal places.
type BoundingBox struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
}
