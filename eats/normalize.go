package eats

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gosom/cheap-eats-nyc/geo"
)

type SourceKind string

const (
	KindOpenData SourceKind = "opendata"
	KindMock     SourceKind = "mock"
	KindLLM      SourceKind = "llm"
)

var (
	ErrMissingName    = errors.New("record has no name")
	ErrNoLocation     = errors.New("record has the (0,0) location sentinel")
	ErrOutsideRadius  = errors.New("record is outside the search radius")
	ErrUnknownKind    = errors.New("unknown source kind")
	ErrMissingPayload = errors.New("record has no payload for its kind")
)

// OpenDataRow mirrors one row of the DOHMH restaurant inspection
// dataset. Socrata returns every field as a string.
type OpenDataRow struct {
	Camis              string `json:"camis"`
	DBA                string `json:"dba"`
	Boro               string `json:"boro"`
	Building           string `json:"building"`
	Street             string `json:"street"`
	Zipcode            string `json:"zipcode"`
	Phone              string `json:"phone"`
	CuisineDescription string `json:"cuisine_description"`
	Latitude           string `json:"latitude"`
	Longitude          string `json:"longitude"`
	Action             string `json:"action"`
}

// MockPlace is the shape of the static placeholder dataset.
type MockPlace struct {
	ID           string
	Name         string
	Cuisine      string
	Rating       float64
	ReviewCount  int
	PriceLevel   string
	AveragePrice float64
	Address      string
	Phone        string
	Coordinates  geo.Coordinate
	IsClosed     bool
}

// RawRecord is a tagged union over the three upstream shapes. Exactly
// one payload field matching Kind must be set.
type RawRecord struct {
	Kind     SourceKind
	OpenData *OpenDataRow
	Mock     *MockPlace
	LLM      map[string]any
}

type cuisineRule struct {
	keywords []string
	cuisine  string
}

// cuisineRules is evaluated in order, first matching keyword wins. This
// is best effort classification from names and descriptions, not real
// category data.
var cuisineRules = []cuisineRule{
	{[]string{"pizza"}, "Pizza"},
	{[]string{"chinese"}, "Chinese"},
	{[]string{"mexican", "taco"}, "Mexican"},
	{[]string{"thai"}, "Thai"},
	{[]string{"indian"}, "Indian"},
	{[]string{"halal"}, "Halal"},
	{[]string{"deli", "sandwich"}, "Deli"},
	{[]string{"bakery", "bread"}, "Bakery"},
	{[]string{"coffee", "cafe"}, "Coffee"},
	{[]string{"burger"}, "Burgers"},
}

// ClassifyCuisine picks a cuisine label from a name plus free text
// description. Falls back to the description, then a generic label.
func ClassifyCuisine(name, description string) string {
	needle := strings.ToLower(name + " " + description)

	for i := range cuisineRules {
		for _, kw := range cuisineRules[i].keywords {
			if strings.Contains(needle, kw) {
				return cuisineRules[i].cuisine
			}
		}
	}

	if description != "" {
		return description
	}

	return DefaultCuisine
}

// Normalizer converts raw upstream records into canonical Restaurants.
// The rand source is injectable so synthesized fields are reproducible
// in tests.
type Normalizer struct {
	rnd          *rand.Rand
	priceCeiling float64
}

type NormalizerOption func(*Normalizer)

func WithSeed(seed int64) NormalizerOption {
	return func(n *Normalizer) {
		n.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithPriceCeiling(ceiling float64) NormalizerOption {
	return func(n *Normalizer) {
		n.priceCeiling = ceiling
	}
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	ans := Normalizer{
		rnd:          rand.New(rand.NewSource(rand.Int63())),
		priceCeiling: 20,
	}

	for _, opt := range opts {
		opt(&ans)
	}

	return &ans
}

// SynthesizeRating draws a plausible rating in [3.5, 5.0). The value is
// an approximation for display, never real review data.
func (n *Normalizer) SynthesizeRating() float64 {
	v := 3.5 + n.rnd.Float64()*1.5

	return float64(int(v*10)) / 10
}

func (n *Normalizer) synthesizeReviewCount() int {
	return n.rnd.Intn(200) + 15
}

// Normalize maps one raw record to the canonical shape. It returns an
// error naming why a record was dropped; callers skip and continue.
func (n *Normalizer) Normalize(raw RawRecord, origin *geo.Coordinate, radiusMiles float64) (*Restaurant, error) {
	switch raw.Kind {
	case KindOpenData:
		if raw.OpenData == nil {
			return nil, ErrMissingPayload
		}

		return n.fromOpenData(raw.OpenData, origin, radiusMiles)
	case KindMock:
		if raw.Mock == nil {
			return nil, ErrMissingPayload
		}

		return n.fromMock(raw.Mock, origin, radiusMiles)
	case KindLLM:
		if raw.LLM == nil {
			return nil, ErrMissingPayload
		}

		return n.fromLLM(raw.LLM, origin)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, raw.Kind)
	}
}

func (n *Normalizer) fromOpenData(row *OpenDataRow, origin *geo.Coordinate, radiusMiles float64) (*Restaurant, error) {
	name := strings.TrimSpace(row.DBA)
	if name == "" {
		return nil, ErrMissingName
	}

	lat, latErr := strconv.ParseFloat(row.Latitude, 64)
	lon, lonErr := strconv.ParseFloat(row.Longitude, 64)

	if latErr != nil || lonErr != nil {
		return nil, ErrNoLocation
	}

	coords := geo.Coordinate{Latitude: lat, Longitude: lon}
	if coords.IsZero() {
		return nil, ErrNoLocation
	}

	ans := Restaurant{
		ID:                row.Camis,
		Name:              name,
		Cuisine:           ClassifyCuisine(name, row.CuisineDescription),
		PriceLevel:        PriceCheap,
		AveragePrice:      n.priceCeiling,
		Rating:            n.SynthesizeRating(),
		ReviewCount:       n.synthesizeReviewCount(),
		Address:           FormatAddress(row.Building, row.Street),
		Phone:             row.Phone,
		IsClosed:          row.Action == "Closed",
		RatingSynthesized: true,
	}

	if ans.ID == "" {
		ans.ID = "nyc-" + uuid.New().String()
	}

	if ans.Phone == "" {
		ans.Phone = DefaultPhone
	}

	if coords.InNYCBounds() {
		ans.Coordinates = &coords
	}

	return n.finish(&ans, origin, radiusMiles)
}

func (n *Normalizer) fromMock(place *MockPlace, origin *geo.Coordinate, radiusMiles float64) (*Restaurant, error) {
	if strings.TrimSpace(place.Name) == "" {
		return nil, ErrMissingName
	}

	ans := Restaurant{
		ID:           place.ID,
		Name:         place.Name,
		Cuisine:      place.Cuisine,
		PriceLevel:   place.PriceLevel,
		AveragePrice: place.AveragePrice,
		Rating:       place.Rating,
		ReviewCount:  place.ReviewCount,
		Address:      place.Address,
		Phone:        place.Phone,
		IsClosed:     place.IsClosed,
		DemoData:     true,
	}

	if ans.ID == "" {
		ans.ID = "mock-" + uuid.New().String()
	}

	if ans.Cuisine == "" {
		ans.Cuisine = DefaultCuisine
	}

	if ans.PriceLevel == "" {
		ans.PriceLevel = PriceCheap
	}

	if ans.AveragePrice == 0 {
		ans.AveragePrice = n.priceCeiling
	}

	if ans.Rating == 0 {
		ans.Rating = n.SynthesizeRating()
		ans.RatingSynthesized = true
	}

	if ans.Address == "" {
		ans.Address = DefaultAddress
	}

	if ans.Phone == "" {
		ans.Phone = DefaultPhone
	}

	if !place.Coordinates.IsZero() && place.Coordinates.InNYCBounds() {
		coords := place.Coordinates
		ans.Coordinates = &coords
	}

	return n.finish(&ans, origin, radiusMiles)
}

func (n *Normalizer) fromLLM(obj map[string]any, origin *geo.Coordinate) (*Restaurant, error) {
	name := strings.TrimSpace(asString(obj["name"]))
	if name == "" {
		return nil, ErrMissingName
	}

	ans := Restaurant{
		ID:           "llm-" + uuid.New().String(),
		Name:         name,
		Cuisine:      asString(obj["cuisine"]),
		PriceLevel:   asString(obj["price_level"]),
		AveragePrice: asFloat(obj["average_price"]),
		Address:      asString(obj["address"]),
		Phone:        asString(obj["phone"]),
		MenuURL:      asString(obj["menu_url"]),
		WebsiteURL:   asString(obj["website_url"]),
	}

	if ans.Cuisine == "" {
		ans.Cuisine = ClassifyCuisine(name, "")
	}

	switch ans.PriceLevel {
	case PriceCheap, PriceModerate, PriceHigh:
	default:
		ans.PriceLevel = PriceCheap
	}

	if ans.AveragePrice <= 0 {
		ans.AveragePrice = n.priceCeiling
	}

	if ans.Address == "" {
		ans.Address = DefaultAddress
	}

	if ans.Phone == "" || strings.EqualFold(ans.Phone, "null") {
		ans.Phone = DefaultPhone
	}

	// Average whichever third party ratings the model produced; only
	// synthesize when all of them are null.
	var sum float64

	var cnt int

	for _, key := range []string{"yelp_rating", "google_rating", "tripadvisor_rating"} {
		if v := asFloat(obj[key]); v > 0 && v <= 5 {
			sum += v
			cnt++
		}
	}

	if cnt > 0 {
		ans.Rating = float64(int(sum/float64(cnt)*10)) / 10
	} else {
		ans.Rating = n.SynthesizeRating()
		ans.RatingSynthesized = true
	}

	if v := asFloat(obj["review_count"]); v > 0 {
		ans.ReviewCount = int(v)
	}

	// LLM answers carry no coordinates; the record keeps a nil location
	// and skips radius filtering.
	return n.finish(&ans, origin, 0)
}

// finish computes distance from the origin and applies the radius cut.
// Radius filtering needs both an origin and a record location; with
// either missing the record passes through with distance zero.
func (n *Normalizer) finish(r *Restaurant, origin *geo.Coordinate, radiusMiles float64) (*Restaurant, error) {
	if origin != nil && r.Coordinates != nil {
		r.DistanceMiles = geo.DistanceMiles(*origin, *r.Coordinates)

		if radiusMiles > 0 && r.DistanceMiles > radiusMiles {
			return nil, ErrOutsideRadius
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

func asString(v any) string {
	s, _ := v.(string)

	return strings.TrimSpace(s)
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}

		return f
	default:
		return 0
	}
}
