package eats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/cheap-eats-nyc/geo"
)

func TestClassifyCuisine(t *testing.T) {
	t.Run("KeywordInName", func(t *testing.T) {
		assert.Equal(t, "Pizza", ClassifyCuisine("Joe's Pizza", ""))
	})

	t.Run("KeywordInDescription", func(t *testing.T) {
		assert.Equal(t, "Mexican", ClassifyCuisine("La Esquina", "taco stand"))
	})

	t.Run("FirstRuleWins", func(t *testing.T) {
		// "pizza" is checked before "deli".
		assert.Equal(t, "Pizza", ClassifyCuisine("Pizza Deli", ""))
	})

	t.Run("FallsBackToDescription", func(t *testing.T) {
		assert.Equal(t, "Ethiopian", ClassifyCuisine("Awash", "Ethiopian"))
	})

	t.Run("GenericFallback", func(t *testing.T) {
		assert.Equal(t, DefaultCuisine, ClassifyCuisine("Some Place", ""))
	})
}

func TestSynthesizeRating(t *testing.T) {
	n := NewNormalizer(WithSeed(42))

	for i := 0; i < 100; i++ {
		v := n.SynthesizeRating()
		assert.GreaterOrEqual(t, v, 3.5)
		assert.Less(t, v, 5.0)
	}

	// Deterministic under the same seed.
	a := NewNormalizer(WithSeed(7)).SynthesizeRating()
	b := NewNormalizer(WithSeed(7)).SynthesizeRating()
	assert.Equal(t, a, b)
}

func TestNormalizeOpenData(t *testing.T) {
	origin := geo.Coordinate{Latitude: 40.7161, Longitude: -73.9961}

	row := OpenDataRow{
		Camis:              "41234567",
		DBA:                " Golden Dragon ",
		Building:           "789",
		Street:             "Mott St",
		Phone:              "2125550789",
		CuisineDescription: "Chinese",
		Latitude:           "40.7165",
		Longitude:          "-73.9950",
	}

	t.Run("Valid", func(t *testing.T) {
		n := NewNormalizer(WithSeed(1))

		r, err := n.Normalize(RawRecord{Kind: KindOpenData, OpenData: &row}, &origin, 2)
		require.NoError(t, err)

		assert.Equal(t, "41234567", r.ID)
		assert.Equal(t, "Golden Dragon", r.Name)
		assert.Equal(t, "Chinese", r.Cuisine)
		assert.Equal(t, "789 Mott St", r.Address)
		assert.Equal(t, PriceCheap, r.PriceLevel)
		assert.True(t, r.RatingSynthesized)
		assert.NotNil(t, r.Coordinates)
		assert.Greater(t, r.DistanceMiles, 0.0)
		assert.NoError(t, r.Validate())
	})

	t.Run("MissingName", func(t *testing.T) {
		bad := row
		bad.DBA = "  "

		_, err := NewNormalizer().Normalize(RawRecord{Kind: KindOpenData, OpenData: &bad}, &origin, 2)
		assert.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("ZeroCoordinatesDropped", func(t *testing.T) {
		bad := row
		bad.Latitude = "0"
		bad.Longitude = "0"

		_, err := NewNormalizer().Normalize(RawRecord{Kind: KindOpenData, OpenData: &bad}, &origin, 2)
		assert.ErrorIs(t, err, ErrNoLocation)
	})

	t.Run("OutsideRadiusDropped", func(t *testing.T) {
		far := row
		far.Latitude = "40.8448"
		far.Longitude = "-73.8648"

		_, err := NewNormalizer().Normalize(RawRecord{Kind: KindOpenData, OpenData: &far}, &origin, 2)
		assert.ErrorIs(t, err, ErrOutsideRadius)
	})

	t.Run("OutOfBoundsCoordinatesDegraded", func(t *testing.T) {
		weird := row
		weird.Latitude = "34.0522"
		weird.Longitude = "-118.2437"

		r, err := NewNormalizer().Normalize(RawRecord{Kind: KindOpenData, OpenData: &weird}, &origin, 2)
		require.NoError(t, err)
		assert.Nil(t, r.Coordinates)
		assert.Equal(t, 0.0, r.DistanceMiles)
	})
}

func TestNormalizeLLM(t *testing.T) {
	t.Run("AveragesRatings", func(t *testing.T) {
		obj := map[string]any{
			"name":               "Joe's",
			"cuisine":            "Pizza",
			"average_price":      12.5,
			"price_level":        "$",
			"address":            "123 Broadway, New York, NY 10001",
			"yelp_rating":        4.0,
			"google_rating":      4.4,
			"tripadvisor_rating": nil,
			"phone":              "(212)-555-1234",
		}

		r, err := NewNormalizer().Normalize(RawRecord{Kind: KindLLM, LLM: obj}, nil, 0)
		require.NoError(t, err)

		assert.Equal(t, 4.2, r.Rating)
		assert.False(t, r.RatingSynthesized)
		assert.Equal(t, 12.5, r.AveragePrice)
		assert.Nil(t, r.Coordinates)
	})

	t.Run("SynthesizesWhenAllRatingsNull", func(t *testing.T) {
		obj := map[string]any{"name": "Mystery Spot"}

		r, err := NewNormalizer(WithSeed(3)).Normalize(RawRecord{Kind: KindLLM, LLM: obj}, nil, 0)
		require.NoError(t, err)

		assert.True(t, r.RatingSynthesized)
		assert.GreaterOrEqual(t, r.Rating, 3.5)
		assert.Less(t, r.Rating, 5.0)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		obj := map[string]any{"name": "Bare Minimum", "phone": "null", "price_level": "$$$$"}

		r, err := NewNormalizer().Normalize(RawRecord{Kind: KindLLM, LLM: obj}, nil, 0)
		require.NoError(t, err)

		assert.Equal(t, DefaultAddress, r.Address)
		assert.Equal(t, DefaultPhone, r.Phone)
		assert.Equal(t, PriceCheap, r.PriceLevel)
		assert.Equal(t, 20.0, r.AveragePrice)
	})
}

func TestNormalizeMock(t *testing.T) {
	origin := geo.Coordinate{Latitude: 40.7505, Longitude: -73.9934}

	place := MockPlace{
		ID:           "mock-1",
		Name:         "Joe's Pizza",
		Cuisine:      "Pizza",
		Rating:       4.2,
		ReviewCount:  156,
		PriceLevel:   "$",
		AveragePrice: 9.5,
		Address:      "123 Broadway",
		Phone:        "(212) 555-0123",
		Coordinates:  geo.Coordinate{Latitude: 40.7510, Longitude: -73.9930},
	}

	r, err := NewNormalizer().Normalize(RawRecord{Kind: KindMock, Mock: &place}, &origin, 2)
	require.NoError(t, err)

	assert.True(t, r.DemoData)
	assert.False(t, r.RatingSynthesized)
	assert.NotNil(t, r.Coordinates)
	assert.Less(t, r.DistanceMiles, 0.1)
}

func TestNormalizeTaggedUnion(t *testing.T) {
	n := NewNormalizer()

	_, err := n.Normalize(RawRecord{Kind: "yelp"}, nil, 0)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = n.Normalize(RawRecord{Kind: KindLLM}, nil, 0)
	assert.ErrorIs(t, err, ErrMissingPayload)
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "123 Broadway", FormatAddress("123", "Broadway"))
	assert.Equal(t, "Broadway", FormatAddress("", "Broadway"))
	assert.Equal(t, DefaultAddress, FormatAddress(" ", ""))
}

func TestDedupKey(t *testing.T) {
	a := Restaurant{Name: "Joe's Pizza", Address: "123 Broadway"}
	b := Restaurant{Name: " joe's pizza ", Address: "123 BROADWAY"}

	assert.Equal(t, a.DedupKey(), b.DedupKey())
}
