package palette

import (
	"sync"

	"golang.org/x/image/colornames"
)

// BuiltinSource is the Source of the palette returned by Builtin.
const BuiltinSource = "builtin:svg"

var builtin = sync.OnceValue(func() *Palette {
	entries := make([]Entry, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		entries = append(entries, Entry{Name: name, R: c.R, G: c.G, B: c.B})
	}
	return New(BuiltinSource, entries...)
})

// Builtin returns the SVG 1.1 color keywords in alphabetical order.
// Aliases such as "gray"/"grey" share RGB values, so the first spelling wins ties.
func Builtin() *Palette {
	return builtin()
}
