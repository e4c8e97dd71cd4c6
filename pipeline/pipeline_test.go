package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/geo"
)

func restaurant(name, address string, distance float64) eats.Restaurant {
	return eats.Restaurant{
		ID:            name,
		Name:          name,
		Cuisine:       "Pizza",
		PriceLevel:    eats.PriceCheap,
		AveragePrice:  10,
		Rating:        4.0,
		Address:       address,
		Phone:         eats.DefaultPhone,
		Coordinates:   &geo.Coordinate{Latitude: 40.75, Longitude: -73.99},
		DistanceMiles: distance,
	}
}

func TestProcess(t *testing.T) {
	origin := &geo.Coordinate{Latitude: 40.75, Longitude: -73.99}

	t.Run("DeduplicatesFirstWins", func(t *testing.T) {
		a := restaurant("Joe's Pizza", "123 Broadway", 0.5)
		a.Rating = 4.5
		b := restaurant("Joe's Pizza", "123 Broadway", 0.5)
		b.Rating = 1.0

		out := Process([]eats.Restaurant{a, b}, origin, Options{RadiusMiles: 2})

		require.Len(t, out, 1)
		assert.Equal(t, 4.5, out[0].Rating)
	})

	t.Run("RadiusFilter", func(t *testing.T) {
		near := restaurant("Near", "1 Near St", 1.9)
		far := restaurant("Far", "1 Far St", 2.5)

		out := Process([]eats.Restaurant{far, near}, origin, Options{RadiusMiles: 2})

		require.Len(t, out, 1)
		assert.Equal(t, "Near", out[0].Name)
	})

	t.Run("NoOriginSkipsRadiusAndKeepsOrder", func(t *testing.T) {
		in := []eats.Restaurant{
			restaurant("C", "3 St", 3.0),
			restaurant("A", "1 St", 1.0),
			restaurant("B", "2 St", 2.0),
		}

		out := Process(in, nil, Options{RadiusMiles: 2})

		require.Len(t, out, 3)
		assert.Equal(t, "C", out[0].Name)
		assert.Equal(t, "A", out[1].Name)
		assert.Equal(t, "B", out[2].Name)
	})

	t.Run("SortsAscendingByDistance", func(t *testing.T) {
		in := []eats.Restaurant{
			restaurant("Far", "3 St", 1.8),
			restaurant("Close", "1 St", 0.2),
			restaurant("Mid", "2 St", 1.0),
		}

		out := Process(in, origin, Options{RadiusMiles: 2})

		require.Len(t, out, 3)
		assert.Equal(t, "Close", out[0].Name)
		assert.Equal(t, "Mid", out[1].Name)
		assert.Equal(t, "Far", out[2].Name)
	})

	t.Run("StableOnTies", func(t *testing.T) {
		in := []eats.Restaurant{
			restaurant("First", "1 St", 1.0),
			restaurant("Second", "2 St", 1.0),
		}

		out := Process(in, origin, Options{RadiusMiles: 2})

		require.Len(t, out, 2)
		assert.Equal(t, "First", out[0].Name)
		assert.Equal(t, "Second", out[1].Name)
	})

	t.Run("MaxPriceFilter", func(t *testing.T) {
		cheap := restaurant("Cheap", "1 St", 0.5)
		cheap.AveragePrice = 12
		pricey := restaurant("Pricey", "2 St", 0.4)
		pricey.AveragePrice = 18

		out := Process([]eats.Restaurant{cheap, pricey}, origin, Options{RadiusMiles: 2, MaxPrice: 15})

		require.Len(t, out, 1)
		assert.Equal(t, "Cheap", out[0].Name)
	})

	t.Run("PriceLevelFilter", func(t *testing.T) {
		cheap := restaurant("Cheap", "1 St", 0.5)
		pricey := restaurant("Pricey", "2 St", 0.4)
		pricey.PriceLevel = eats.PriceModerate

		out := Process([]eats.Restaurant{cheap, pricey}, origin, Options{RadiusMiles: 2, PriceLevel: eats.PriceCheap})

		require.Len(t, out, 1)
		assert.Equal(t, "Cheap", out[0].Name)
	})

	t.Run("CuisineFilter", func(t *testing.T) {
		pizza := restaurant("Pizza Spot", "1 St", 0.5)
		thai := restaurant("Thai Spot", "2 St", 0.4)
		thai.Cuisine = "Thai"

		out := Process([]eats.Restaurant{pizza, thai}, origin, Options{RadiusMiles: 2, Cuisine: "thai"})

		require.Len(t, out, 1)
		assert.Equal(t, "Thai Spot", out[0].Name)
	})

	t.Run("Cap", func(t *testing.T) {
		var in []eats.Restaurant

		for i := 0; i < 50; i++ {
			in = append(in, restaurant(fmt.Sprintf("R%02d", i), fmt.Sprintf("%d St", i), float64(i)*0.01))
		}

		out := Process(in, origin, Options{RadiusMiles: 2, Cap: 40})

		assert.Len(t, out, 40)
	})
}
