package models

import (
	"github.com/go-playground/validator/v10"

	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/geo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SearchQuery is owned by the orchestrator for the duration of one
// search. Zero values are filled with defaults before validation.
type SearchQuery struct {
	Location    string  `json:"location" validate:"required"`
	Cuisine     string  `json:"cuisine,omitempty"`
	PriceFilter string  `json:"price_filter,omitempty" validate:"omitempty,oneof=$ $$ $$$"`
	MaxPrice    float64 `json:"max_price" validate:"gte=0"`
	RadiusMiles float64 `json:"radius_miles" validate:"gte=0,lte=50"`
	Limit       int     `json:"limit" validate:"gte=0,lte=100"`
}

const (
	DefaultMaxPrice    = 20.0
	DefaultRadiusMiles = 2.0
	DefaultLimit       = 40
)

func (q *SearchQuery) ApplyDefaults() {
	if q.MaxPrice == 0 {
		q.MaxPrice = DefaultMaxPrice
	}

	if q.RadiusMiles == 0 {
		q.RadiusMiles = DefaultRadiusMiles
	}

	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
}

func (q *SearchQuery) Validate() error {
	return validate.Struct(q)
}

// Search lifecycle states exposed to the presentation layer.
const (
	StatusSuccess     = "success"
	StatusEmptyResult = "empty"
	StatusFallback    = "fallback"
)

type SearchResponse struct {
	Status      string            `json:"status"`
	Notice      string            `json:"notice,omitempty"`
	Origin      geo.Coordinate    `json:"origin"`
	Restaurants []eats.Restaurant `json:"restaurants"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeolocateRequest carries the device geolocation outcome: either a
// position or one of the provider error codes.
type GeolocateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
	ErrorCode string  `json:"error_code,omitempty" validate:"omitempty,oneof=permission-denied position-unavailable timeout"`
}

func (r *GeolocateRequest) Validate() error {
	return validate.Struct(r)
}
