package geo

import "math"

// Loose NYC bounding box. Coordinates outside it are treated as absent
// rather than hard errors.
const (
	minLatitude  = 40.4
	maxLatitude  = 41.0
	minLongitude = -74.5
	maxLongitude = -73.5
)

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultCenter is central Manhattan, used when a location string
// cannot be resolved to anything better.
func DefaultCenter() Coordinate {
	return Coordinate{Latitude: 40.7831, Longitude: -73.9712}
}

func (c Coordinate) InNYCBounds() bool {
	return c.Latitude >= minLatitude && c.Latitude <= maxLatitude &&
		c.Longitude >= minLongitude && c.Longitude <= maxLongitude
}

// IsZero reports whether the coordinate is the (0,0) sentinel that
// upstream datasets use for "no location".
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// DistanceMiles returns the great circle distance between a and b using
// the haversine formula.
func DistanceMiles(a, b Coordinate) float64 {
	const earthRadiusMiles = 3959

	alat := a.Latitude * math.Pi / 180
	alon := a.Longitude * math.Pi / 180

	blat := b.Latitude * math.Pi / 180
	blon := b.Longitude * math.Pi / 180

	dlat := blat - alat
	dlon := blon - alon

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(alat)*math.Cos(blat)*
			math.Sin(dlon/2)*math.Sin(dlon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}
