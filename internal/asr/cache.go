// Package asr owns the process-wide recognition model registry: the fixed
// identifier allow-list and a get-or-load engine cache.
package asr

import (
	"context"
	"sync"

	"ytscribe/internal/ports"
)

// KnownModels is the fixed set of accepted model identifiers. Identifiers
// arrive from HTTP clients, so anything outside this set is rejected before
// a load is attempted.
var KnownModels = []string{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large", "turbo",
}

// KnownModel reports whether id is an accepted model identifier.
func KnownModel(id string) bool {
	for _, m := range KnownModels {
		if m == id {
			return true
		}
	}
	return false
}

// Cache hands out loaded engines by model identifier. Entries live for the
// process lifetime; the identifier set is small and fixed, so there is no
// eviction. One mutex guards the map and is held across the load: a single
// loader runs at a time and concurrent callers block until it finishes.
type Cache struct {
	loader ports.ModelLoader

	mu      sync.Mutex
	engines map[string]ports.Engine
	loads   int
}

func NewCache(loader ports.ModelLoader) *Cache {
	return &Cache{loader: loader, engines: make(map[string]ports.Engine)}
}

// Get returns the cached engine for modelID, loading it on first use.
func (c *Cache) Get(ctx context.Context, modelID string) (ports.Engine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if eng, ok := c.engines[modelID]; ok {
		return eng, nil
	}
	eng, err := c.loader.Load(ctx, modelID)
	if err != nil {
		return nil, err
	}
	c.engines[modelID] = eng
	c.loads++
	return eng, nil
}

// Loads reports how many loads have completed, for tests and diagnostics.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}
