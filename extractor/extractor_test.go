package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantArray(t *testing.T) {
	t.Run("CleanJSON", func(t *testing.T) {
		objs := RestaurantArray(`[{"name": "Joe's", "cuisine": "Pizza"}]`)

		require.Len(t, objs, 1)
		assert.Equal(t, "Joe's", objs[0]["name"])
	})

	t.Run("FencedSingleQuotedTrailingComma", func(t *testing.T) {
		input := "```json\n[{name:'Joe', cuisine:'Pizza'},]\n```"

		objs := RestaurantArray(input)

		require.Len(t, objs, 1)
		assert.Equal(t, "Joe", objs[0]["name"])
		assert.Equal(t, "Pizza", objs[0]["cuisine"])
	})

	t.Run("ApostrophesInValidStrings", func(t *testing.T) {
		objs := RestaurantArray(`[{"name": "Joe's Pizza", "address": "12 St. Mark's Pl"}]`)

		require.Len(t, objs, 1)
		assert.Equal(t, "Joe's Pizza", objs[0]["name"])
		assert.Equal(t, "12 St. Mark's Pl", objs[0]["address"])
	})

	t.Run("ApostrophesAcrossObjects", func(t *testing.T) {
		input := `[{"name": "Joe's Pizza", "cuisine": "Pizza"},
{"name": "Vanessa's Dumpling House", "cuisine": "Chinese"}]`

		objs := RestaurantArray(input)

		require.Len(t, objs, 2)
		assert.Equal(t, "Joe's Pizza", objs[0]["name"])
		assert.Equal(t, "Vanessa's Dumpling House", objs[1]["name"])
	})

	t.Run("ApostropheSalvagedObject", func(t *testing.T) {
		input := `[{"name": "St. Mark's Deli", "address": "O'Malley's corner"}, {"name": "Broken", "cuisine": `

		objs := RestaurantArray(input)

		require.Len(t, objs, 1)
		assert.Equal(t, "St. Mark's Deli", objs[0]["name"])
		assert.Equal(t, "O'Malley's corner", objs[0]["address"])
	})

	t.Run("ArrayEmbeddedInProse", func(t *testing.T) {
		input := `Here are some budget picks:
[{"name": "Taco Libre", "cuisine": "Mexican", "average_price": 11}]
Enjoy!`

		objs := RestaurantArray(input)

		require.Len(t, objs, 1)
		assert.Equal(t, "Taco Libre", objs[0]["name"])
	})

	t.Run("PartialFailureSalvagesGoodObjects", func(t *testing.T) {
		input := `[{"name": "Good One", "cuisine": "Thai"}, {"name": "Broken", "cuisine": `

		objs := RestaurantArray(input)

		require.Len(t, objs, 1)
		assert.Equal(t, "Good One", objs[0]["name"])
	})

	t.Run("BrokenObjectFirst", func(t *testing.T) {
		input := `[{"name": "Broken", "cuisine":  {"name": "Good One", "cuisine": "Thai"}]`

		objs := RestaurantArray(input)

		require.Len(t, objs, 1)
		assert.Equal(t, "Good One", objs[0]["name"])
	})

	t.Run("ObjectsWithoutNameDropped", func(t *testing.T) {
		objs := RestaurantArray(`[{"cuisine": "Pizza"}, {"name": "Kept"}]`)

		require.Len(t, objs, 1)
		assert.Equal(t, "Kept", objs[0]["name"])
	})

	t.Run("NoArrayAtAll", func(t *testing.T) {
		assert.Empty(t, RestaurantArray("I could not find any restaurants, sorry."))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, RestaurantArray(""))
	})

	t.Run("EmptyArray", func(t *testing.T) {
		assert.Empty(t, RestaurantArray("[]"))
	})
}
