package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMiles(t *testing.T) {
	t.Run("SamePoint", func(t *testing.T) {
		a := Coordinate{Latitude: 40.7580, Longitude: -73.9855}

		assert.Equal(t, 0.0, DistanceMiles(a, a))
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := Coordinate{Latitude: 40.7580, Longitude: -73.9855}
		b := Coordinate{Latitude: 40.6782, Longitude: -73.9442}

		assert.InDelta(t, DistanceMiles(a, b), DistanceMiles(b, a), 1e-9)
	})

	t.Run("KnownReference", func(t *testing.T) {
		// Times Square to Grand Central is roughly 0.7 miles.
		timesSquare := Coordinate{Latitude: 40.7580, Longitude: -73.9855}
		grandCentral := Coordinate{Latitude: 40.7527, Longitude: -73.9772}

		d := DistanceMiles(timesSquare, grandCentral)
		assert.InDelta(t, 0.55, d, 0.2)
	})

	t.Run("RadiusBoundary", func(t *testing.T) {
		origin := Coordinate{Latitude: 40.75, Longitude: -73.99}

		near := Coordinate{Latitude: 40.75 + 1.9/69.0, Longitude: -73.99}
		far := Coordinate{Latitude: 40.75 + 2.5/69.0, Longitude: -73.99}

		assert.Less(t, DistanceMiles(origin, near), 2.0)
		assert.Greater(t, DistanceMiles(origin, far), 2.0)
	})
}

func TestInNYCBounds(t *testing.T) {
	assert.True(t, Coordinate{Latitude: 40.7161, Longitude: -73.9961}.InNYCBounds())
	assert.False(t, Coordinate{Latitude: 34.0522, Longitude: -118.2437}.InNYCBounds())
	assert.False(t, Coordinate{}.InNYCBounds())
}

func TestIsZero(t *testing.T) {
	assert.True(t, Coordinate{}.IsZero())
	assert.False(t, DefaultCenter().IsZero())
}
