// Package pipeline implements the pure result shaping stage: dedup,
// filter, rank, cap. It does no I/O and owns no state, so the search
// orchestrator and tests call it with plain slices.
package pipeline

import (
	"context"
	"sort"
	"strings"

	"github.com/gosom/cheap-eats-nyc/deduper"
	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/geo"
)

const DefaultCap = 40

type Options struct {
	RadiusMiles float64
	MaxPrice    float64
	PriceLevel  string
	Cuisine     string
	Cap         int
}

// Process deduplicates by the composite name+address key (first
// occurrence wins), filters by radius and price, ranks by distance and
// truncates. Radius filtering and distance ranking need an origin; with
// origin nil the input order is preserved.
func Process(records []eats.Restaurant, origin *geo.Coordinate, opts Options) []eats.Restaurant {
	if opts.Cap <= 0 {
		opts.Cap = DefaultCap
	}

	dedup := deduper.New()
	ctx := context.Background()

	ans := make([]eats.Restaurant, 0, len(records))

	for i := range records {
		r := records[i]

		if !dedup.AddIfNotExists(ctx, r.DedupKey()) {
			continue
		}

		if origin != nil && opts.RadiusMiles > 0 && r.Coordinates != nil &&
			r.DistanceMiles > opts.RadiusMiles {
			continue
		}

		if opts.MaxPrice > 0 && r.AveragePrice > opts.MaxPrice {
			continue
		}

		if opts.PriceLevel != "" && r.PriceLevel != opts.PriceLevel {
			continue
		}

		if opts.Cuisine != "" && !strings.EqualFold(r.Cuisine, opts.Cuisine) {
			continue
		}

		ans = append(ans, r)
	}

	if origin != nil {
		// Stable: equidistant records keep their upstream order.
		sort.SliceStable(ans, func(i, j int) bool {
			return ans[i].DistanceMiles < ans[j].DistanceMiles
		})
	}

	if len(ans) > opts.Cap {
		ans = ans[:opts.Cap]
	}

	return ans
}
