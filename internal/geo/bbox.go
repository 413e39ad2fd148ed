// Package geo derives search areas from a center point and radius on the WGS84 ellipsoid.
package geo

import (
	"fmt"
	"math"

	"github.com/UnknownOlympus/overhead/internal/models"
	"github.com/tidwall/geodesic"
)

const (
	// MetersPerMile is the length of an international statute mile.
	MetersPerMile = 1609.344

	bearingNE = 45.0
	bearingSW = 225.0

	maxLatitude  = 90.0
	maxLongitude = 180.0
	precision    = 1e6
)

// ComputeBoundingBox returns the square search area around (lat, lon) whose north-east and
// south-west corners lie radiusMiles away along the geodesic at bearings 45° and 225°.
//
// The square is an approximation of the search circle. When the area reaches a pole the box
// is extended to that pole and to every longitude; when it straddles the antimeridian it
// spans every longitude. In all cases LatMin <= LatMax and LonMin <= LonMax.
func ComputeBoundingBox(lat, lon, radiusMiles float64) (models.BoundingBox, error) {
	if err := validate(lat, lon, radiusMiles); err != nil {
		return models.BoundingBox{}, err
	}

	distance := radiusMiles * MetersPerMile

	neLat, neLon := Destination(lat, lon, bearingNE, distance)
	swLat, swLon := Destination(lat, lon, bearingSW, distance)

	box := models.BoundingBox{
		LatMin: round(swLat),
		LatMax: round(neLat),
		LonMin: round(swLon),
		LonMax: round(neLon),
	}

	fullLongitude := false

	if Distance(lat, lon, maxLatitude, lon) <= distance {
		box.LatMax = maxLatitude
		fullLongitude = true
	}
	if Distance(lat, lon, -maxLatitude, lon) <= distance {
		box.LatMin = -maxLatitude
		fullLongitude = true
	}
	if box.LatMin > box.LatMax {
		box.LatMin, box.LatMax = -maxLatitude, maxLatitude
		fullLongitude = true
	}

	// Corners on opposite sides of the antimeridian.
	if box.LonMax < box.LonMin {
		fullLongitude = true
	}

	if fullLongitude {
		box.LonMin, box.LonMax = -maxLongitude, maxLongitude
	}

	return box, nil
}

// Destination solves the direct geodesic problem: the point reached from (lat, lon)
// travelling distance meters at the given bearing in degrees.
func Destination(lat, lon, bearing, distance float64) (float64, float64) {
	var lat2, lon2 float64
	geodesic.WGS84.Direct(lat, lon, bearing, distance, &lat2, &lon2, nil)

	return lat2, lon2
}

// Distance returns the geodesic distance in meters between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	var s12 float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &s12, nil, nil)

	return s12
}

// ValidateLocation checks that the coordinate is finite and within the WGS84 ranges.
func ValidateLocation(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -maxLatitude || lat > maxLatitude {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", models.ErrInvalidArgument, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -maxLongitude || lon > maxLongitude {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", models.ErrInvalidArgument, lon)
	}

	return nil
}

func validate(lat, lon, radiusMiles float64) error {
	if err := ValidateLocation(lat, lon); err != nil {
		return err
	}
	if math.IsNaN(radiusMiles) || math.IsInf(radiusMiles, 0) || radiusMiles <= 0 {
		return fmt.Errorf("%w: radius must be a positive number of miles, got %v",
			models.ErrInvalidArgument, radiusMiles)
	}

	return nil
}

func round(v float64) float64 {
	return math.Round(v*precision) / precision
}
