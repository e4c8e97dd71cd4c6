package deduper

import (
	"context"
	"hash/fnv"
	"sync"
)

var _ Deduper = (*fnvSet)(nil)

// fnvSet stores fnv-64 hashes of keys instead of the keys themselves;
// a search never holds more than a few hundred entries, so collisions
// are not a practical concern.
type fnvSet struct {
	mux  sync.RWMutex
	seen map[uint64]struct{}
}

func (d *fnvSet) AddIfNotExists(_ context.Context, key string) bool {
	h := hash(key)

	d.mux.RLock()
	_, ok := d.seen[h]
	d.mux.RUnlock()

	if ok {
		return false
	}

	d.mux.Lock()
	defer d.mux.Unlock()

	if _, ok := d.seen[h]; ok {
		return false
	}

	d.seen[h] = struct{}{}

	return true
}

func hash(key string) uint64 {
	h := fnv.New64()
	h.Write([]byte(key))

	return h.Sum64()
}
