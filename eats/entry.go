package eats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosom/cheap-eats-nyc/deduper"
	"github.com/gosom/cheap-eats-nyc/geo"
)

const (
	PriceCheap    = "$"
	PriceModerate = "$$"
	PriceHigh     = "$$$"
)

const (
	DefaultAddress = "Address not available"
	DefaultPhone   = "Phone not available"
	DefaultCuisine = "Restaurant"
)

// Restaurant is the canonical record every upstream shape normalizes
// into. A Restaurant is built fresh per search and never mutated after
// construction.
type Restaurant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Cuisine       string          `json:"cuisine"`
	PriceLevel    string          `json:"price_level"`
	AveragePrice  float64         `json:"average_price"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"review_count"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	Coordinates   *geo.Coordinate `json:"coordinates,omitempty"`
	DistanceMiles float64         `json:"distance_miles"`
	WebsiteURL    string          `json:"website_url,omitempty"`
	MenuURL       string          `json:"menu_url,omitempty"`
	IsClosed      bool            `json:"is_closed"`

	// RatingSynthesized marks ratings (and review counts) drawn from the
	// plausible-range generator rather than upstream data. Presentation
	// must never show these as verified ratings.
	RatingSynthesized bool `json:"rating_synthesized,omitempty"`

	// DemoData marks static placeholder records substituted when the
	// live data source failed.
	DemoData bool `json:"demo_data,omitempty"`
}

func (r *Restaurant) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is empty")
	}

	if r.PriceLevel != PriceCheap && r.PriceLevel != PriceModerate && r.PriceLevel != PriceHigh {
		return fmt.Errorf("invalid price level %q", r.PriceLevel)
	}

	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("rating %f out of range", r.Rating)
	}

	if r.AveragePrice < 0 {
		return fmt.Errorf("average price cannot be negative")
	}

	if r.ReviewCount < 0 {
		return fmt.Errorf("review count cannot be negative")
	}

	return nil
}

// DedupKey is the composite identity used by the pipeline: duplicates of
// the same establishment across inspection rows share name and address.
func (r *Restaurant) DedupKey() string {
	return deduper.Key(r.Name, r.Address)
}

func (r *Restaurant) CsvHeaders() []string {
	return []string{
		"id",
		"name",
		"cuisine",
		"price_level",
		"average_price",
		"rating",
		"review_count",
		"address",
		"phone",
		"latitude",
		"longitude",
		"distance_miles",
		"website_url",
		"menu_url",
		"is_closed",
		"rating_synthesized",
		"demo_data",
	}
}

func (r *Restaurant) CsvRow() []string {
	var lat, lon string

	if r.Coordinates != nil {
		lat = strconv.FormatFloat(r.Coordinates.Latitude, 'f', -1, 64)
		lon = strconv.FormatFloat(r.Coordinates.Longitude, 'f', -1, 64)
	}

	return []string{
		r.ID,
		r.Name,
		r.Cuisine,
		r.PriceLevel,
		strconv.FormatFloat(r.AveragePrice, 'f', 2, 64),
		strconv.FormatFloat(r.Rating, 'f', 1, 64),
		strconv.Itoa(r.ReviewCount),
		r.Address,
		r.Phone,
		lat,
		lon,
		strconv.FormatFloat(r.DistanceMiles, 'f', 2, 64),
		r.WebsiteURL,
		r.MenuURL,
		strconv.FormatBool(r.IsClosed),
		strconv.FormatBool(r.RatingSynthesized),
		strconv.FormatBool(r.DemoData),
	}
}

// FormatAddress joins a building number and street the way the city
// dataset splits them.
func FormatAddress(building, street string) string {
	building = strings.TrimSpace(building)
	street = strings.TrimSpace(street)

	switch {
	case building != "" && street != "":
		return building + " " + street
	case building != "":
		return building
	case street != "":
		return street
	default:
		return DefaultAddress
	}
}
