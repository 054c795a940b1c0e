package geo

import (
	"errors"
	"math"
)

// EarthRadiusMiles is the mean radius used for the spherical-Earth
// approximation.
const EarthRadiusMiles = 3958.8

var ErrOutOfRange = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return ErrOutOfRange
	}

	return nil
}

// Haversine returns the great-circle distance between a and b in miles.
func Haversine(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
