package fetchers

import (
	"context"
	"math/rand"
	"strings"

	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/geo"
	"github.com/gosom/cheap-eats-nyc/models"
)

// Mock serves a static placeholder dataset. It backs demo deployments
// and tests, and the search fallback path reuses the same records.
type Mock struct {
	rnd *rand.Rand
}

func NewMock(seed int64) *Mock {
	return &Mock{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (m *Mock) Kind() eats.SourceKind {
	return eats.KindMock
}

// BasePlaces returns the fixed placeholder set with coordinates
// jittered around the origin so every record lands in radius.
func (m *Mock) BasePlaces(origin geo.Coordinate) []eats.MockPlace {
	jitter := func(spread float64) float64 {
		return (m.rnd.Float64() - 0.5) * spread
	}

	return []eats.MockPlace{
		{
			ID:           "mock-1",
			Name:         "Joe's Pizza",
			Cuisine:      "Pizza",
			Rating:       4.2,
			ReviewCount:  156,
			PriceLevel:   eats.PriceCheap,
			AveragePrice: 9.50,
			Address:      "123 Broadway, New York, NY 10001",
			Phone:        "(212) 555-0123",
			Coordinates: geo.Coordinate{
				Latitude:  origin.Latitude + jitter(0.01),
				Longitude: origin.Longitude + jitter(0.01),
			},
		},
		{
			ID:           "mock-2",
			Name:         "NYC Deli Express",
			Cuisine:      "Deli",
			Rating:       3.8,
			ReviewCount:  89,
			PriceLevel:   eats.PriceCheap,
			AveragePrice: 11.00,
			Address:      "456 Avenue A, New York, NY 10009",
			Phone:        "(212) 555-0456",
			Coordinates: geo.Coordinate{
				Latitude:  origin.Latitude + jitter(0.015),
				Longitude: origin.Longitude + jitter(0.015),
			},
		},
		{
			ID:           "mock-3",
			Name:         "Dragon Garden",
			Cuisine:      "Chinese",
			Rating:       4.0,
			ReviewCount:  234,
			PriceLevel:   eats.PriceCheap,
			AveragePrice: 12.75,
			Address:      "789 Mott St, New York, NY 10013",
			Phone:        "(212) 555-0789",
			Coordinates: geo.Coordinate{
				Latitude:  origin.Latitude + jitter(0.02),
				Longitude: origin.Longitude + jitter(0.02),
			},
		},
	}
}

var cuisineMocks = map[string]eats.MockPlace{
	"pizza":   {Name: "Slice Heaven", Cuisine: "Pizza"},
	"chinese": {Name: "Golden Dragon", Cuisine: "Chinese"},
	"mexican": {Name: "Taco Libre", Cuisine: "Mexican"},
	"thai":    {Name: "Bangkok Express", Cuisine: "Thai"},
	"indian":  {Name: "Curry Palace", Cuisine: "Indian"},
	"deli":    {Name: "Corner Deli", Cuisine: "Deli"},
	"halal":   {Name: "Halal Corner", Cuisine: "Halal"},
	"coffee":  {Name: "Coffee Corner", Cuisine: "Coffee"},
}

func (m *Mock) Fetch(_ context.Context, q models.SearchQuery, origin geo.Coordinate) ([]eats.RawRecord, error) {
	places := m.BasePlaces(origin)

	if extra, ok := cuisineMocks[strings.ToLower(q.Cuisine)]; ok {
		extra.ID = "mock-" + strings.ToLower(q.Cuisine)
		extra.PriceLevel = eats.PriceCheap
		extra.AveragePrice = 8 + m.rnd.Float64()*8
		extra.Address = "1 Main St, New York, NY 10001"
		extra.Coordinates = geo.Coordinate{
			Latitude:  origin.Latitude + (m.rnd.Float64()-0.5)*0.02,
			Longitude: origin.Longitude + (m.rnd.Float64()-0.5)*0.02,
		}
		places = append(places, extra)
	}

	ans := make([]eats.RawRecord, 0, len(places))

	for i := range places {
		ans = append(ans, eats.RawRecord{Kind: eats.KindMock, Mock: &places[i]})
	}

	return ans, nil
}
