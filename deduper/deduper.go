// Package deduper tracks restaurant identity keys seen within one
// search so the same establishment never appears twice in a result set.
package deduper

import (
	"context"
	"strings"
)

type Deduper interface {
	AddIfNotExists(context.Context, string) bool
}

func New() Deduper {
	return &fnvSet{
		seen: make(map[uint64]struct{}),
	}
}

// Key builds the composite identity key from record fields. Inspection
// rows repeat one establishment many times; case and surrounding
// whitespace differ between rows, the establishment does not.
func Key(parts ...string) string {
	norm := make([]string, len(parts))

	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}

	return strings.Join(norm, "|")
}
