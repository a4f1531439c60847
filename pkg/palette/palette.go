// Package palette provides the named color reference table used for
// nearest-color lookups.
package palette

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash"
)

// Entry is a single named color.
type Entry struct {
	Name string
	R    uint8
	G    uint8
	B    uint8
}

// String returns the entry as "Name (r, g, b)".
func (e Entry) String() string {
	return fmt.Sprintf("%s (%d, %d, %d)", e.Name, e.R, e.G, e.B)
}

// Palette is an ordered, immutable list of named colors.
// Order matters only for breaking distance ties.
type Palette struct {
	source  string
	entries []Entry
	sum     uint64
}

// New creates a palette from the given entries. The slice is copied.
func New(source string, entries ...Entry) *Palette {
	p := &Palette{
		source:  source,
		entries: slices.Clone(entries),
	}
	p.sum = checksum(p.entries)
	return p
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// At returns the i-th entry in stored order.
func (p *Palette) At(i int) Entry {
	return p.entries[i]
}

// Entries returns a copy of all entries in stored order.
func (p *Palette) Entries() []Entry {
	if p == nil {
		return nil
	}
	return slices.Clone(p.entries)
}

// Source describes where the palette was loaded from.
func (p *Palette) Source() string {
	return p.source
}

// Checksum returns an xxhash64 fingerprint of the palette contents.
// Two palettes with the same entries in the same order share a checksum.
func (p *Palette) Checksum() uint64 {
	return p.sum
}

// Find returns the first entry whose name matches (case-insensitive).
func (p *Palette) Find(name string) (Entry, bool) {
	if p == nil {
		return Entry{}, false
	}
	i := slices.IndexFunc(p.entries, func(e Entry) bool {
		return strings.EqualFold(e.Name, name)
	})
	if i < 0 {
		return Entry{}, false
	}
	return p.entries[i], true
}

func checksum(entries []Entry) uint64 {
	h := xxhash.New()
	for _, e := range entries {
		h.Write([]byte(e.Name))
		h.Write([]byte{0, e.R, e.G, e.B})
	}
	return h.Sum64()
}
