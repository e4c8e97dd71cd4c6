package search

import (
	"fmt"

	"github.com/gosom/cheap-eats-nyc/geo"
	"github.com/gosom/cheap-eats-nyc/models"
)

// GeolocationError carries the user-facing message for a device
// geolocation failure.
type GeolocationError struct {
	Code    string
	Message string
}

func (e *GeolocationError) Error() string {
	return fmt.Sprintf("geolocation %s: %s", e.Code, e.Message)
}

var geolocationMessages = map[string]string{
	"permission-denied":    "Location access denied. Enable location services to see your position.",
	"position-unavailable": "Unable to determine your location. Check your connection and try again.",
	"timeout":              "Location request timed out. Try again or search by neighborhood instead.",
}

// ResolveGeolocation turns a device geolocation outcome into an origin
// coordinate. A reported position is treated like a resolved manual
// location; provider error codes map to fixed messages.
func ResolveGeolocation(req models.GeolocateRequest) (geo.Coordinate, error) {
	if err := req.Validate(); err != nil {
		return geo.Coordinate{}, err
	}

	if req.ErrorCode != "" {
		return geo.Coordinate{}, &GeolocationError{
			Code:    req.ErrorCode,
			Message: geolocationMessages[req.ErrorCode],
		}
	}

	pos := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}

	if pos.IsZero() {
		return geo.Coordinate{}, &GeolocationError{
			Code:    "position-unavailable",
			Message: geolocationMessages["position-unavailable"],
		}
	}

	return pos, nil
}
