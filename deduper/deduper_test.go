package deduper

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Run("NormalizesCaseAndWhitespace", func(t *testing.T) {
		assert.Equal(t,
			Key("Joe's Pizza", "123 Broadway"),
			Key("  JOE'S PIZZA ", " 123 broadway"))
	})

	t.Run("PartsAreDelimited", func(t *testing.T) {
		assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	})
}

func TestAddIfNotExists(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstAddWins", func(t *testing.T) {
		d := New()

		assert.True(t, d.AddIfNotExists(ctx, "joe's pizza|123 broadway"))
		assert.False(t, d.AddIfNotExists(ctx, "joe's pizza|123 broadway"))
	})

	t.Run("DistinctKeysCoexist", func(t *testing.T) {
		d := New()

		assert.True(t, d.AddIfNotExists(ctx, "joe's pizza|123 broadway"))
		assert.True(t, d.AddIfNotExists(ctx, "joe's pizza|99 macdougal st"))
	})

	t.Run("ConcurrentAddsSeeEachKeyOnce", func(t *testing.T) {
		d := New()

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)

		for i := 0; i < 8; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for j := 0; j < 100; j++ {
					if d.AddIfNotExists(ctx, fmt.Sprintf("key-%d", j)) {
						mu.Lock()
						wins++
						mu.Unlock()
					}
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, 100, wins)
	})
}
