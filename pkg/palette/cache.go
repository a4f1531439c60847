package palette

import (
	"path/filepath"
	"sync"
)

// LoaderFunc reads a palette from a source path.
type LoaderFunc func(path string) (*Palette, error)

// Cache loads each palette source at most once and hands out the same
// result (palette or error) on every later call. Safe for concurrent use.
type Cache struct {
	load    LoaderFunc
	mu      sync.Mutex
	sources map[string]func() (*Palette, error)

	// Stats
	hits   int
	misses int
}

// NewCache creates a cache backed by load. A nil load uses LoadFile.
func NewCache(load LoaderFunc) *Cache {
	if load == nil {
		load = LoadFile
	}
	return &Cache{
		load:    load,
		sources: make(map[string]func() (*Palette, error)),
	}
}

// Get returns the palette for source, reading it on first use.
// BuiltinSource always resolves to Builtin.
func (c *Cache) Get(source string) (*Palette, error) {
	if source == BuiltinSource {
		return Builtin(), nil
	}
	key := filepath.Clean(source)

	c.mu.Lock()
	once, ok := c.sources[key]
	if ok {
		c.hits++
	} else {
		c.misses++
		once = sync.OnceValues(func() (*Palette, error) {
			return c.load(source)
		})
		c.sources[key] = once
	}
	c.mu.Unlock()

	return once()
}

// Stats returns cache hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear forgets all loaded sources and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = make(map[string]func() (*Palette, error))
	c.hits = 0
	c.misses = 0
}

var shared = NewCache(nil)

// LoadCached returns the process-wide palette for source. The source is read
// once per process; later calls return the same palette without touching it.
func LoadCached(source string) (*Palette, error) {
	return shared.Get(source)
}
