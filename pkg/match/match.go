// Package match finds the palette entry nearest to a query color.
package match

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/hueprobe/pkg/palette"
)

// Match errors.
var (
	ErrEmptyPalette = errors.New("palette has no entries")
	ErrInvalidQuery = errors.New("channel value out of range 0-255")
)

// Query is an RGB triple sampled from an image.
type Query struct {
	R, G, B int
}

// Validate reports ErrInvalidQuery if any channel is outside [0, 255].
func (q Query) Validate() error {
	for _, ch := range []struct {
		label string
		v     int
	}{{"red", q.R}, {"green", q.G}, {"blue", q.B}} {
		if ch.v < 0 || ch.v > 255 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidQuery, ch.label, ch.v)
		}
	}
	return nil
}

// String returns the query as "(r, g, b)".
func (q Query) String() string {
	return fmt.Sprintf("(%d, %d, %d)", q.R, q.G, q.B)
}

// Result is the palette entry selected for a query. The channels are the
// entry's, not the query's.
type Result struct {
	Name     string
	R, G, B  uint8
	Index    int     // position in the palette
	Distance float64 // as measured by the metric used
}

// String returns the matched color as "(r, g, b)".
func (r Result) String() string {
	return fmt.Sprintf("(%d, %d, %d)", r.R, r.G, r.B)
}

// Hex returns the matched color as "#rrggbb".
func (r Result) Hex() string {
	return colorful.Color{
		R: float64(r.R) / 255,
		G: float64(r.G) / 255,
		B: float64(r.B) / 255,
	}.Hex()
}

// Metric measures how far a query is from a palette entry.
// Any metric used for matching must be monotonic in Euclidean distance.
type Metric func(q Query, e palette.Entry) float64

// SquaredDistance is the squared Euclidean distance in RGB space.
func SquaredDistance(q Query, e palette.Entry) float64 {
	dr := q.R - int(e.R)
	dg := q.G - int(e.G)
	db := q.B - int(e.B)
	return float64(dr*dr + dg*dg + db*db)
}

// EuclideanDistance is the true Euclidean distance in RGB space.
func EuclideanDistance(q Query, e palette.Entry) float64 {
	return math.Sqrt(SquaredDistance(q, e))
}

// Match returns the entry of p nearest to q by squared Euclidean distance.
// Ties go to the entry that appears first in p.
func Match(q Query, p *palette.Palette) (Result, error) {
	return MatchWith(q, p, SquaredDistance)
}

// MatchWith is Match with a caller-supplied metric.
func MatchWith(q Query, p *palette.Palette, metric Metric) (Result, error) {
	scored, err := score(q, p, metric)
	if err != nil {
		return Result{}, err
	}
	// MinFunc keeps the first of several equal minima.
	return slices.MinFunc(scored, byDistance), nil
}

// Rank returns up to n entries nearest to q, closest first. Entries at equal
// distance keep palette order, so Rank(q, p, 1)[0] equals Match(q, p).
func Rank(q Query, p *palette.Palette, n int) ([]Result, error) {
	scored, err := score(q, p, SquaredDistance)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(scored, byDistance)
	if n > 0 && n < len(scored) {
		scored = scored[:n]
	}
	return scored, nil
}

func score(q Query, p *palette.Palette, metric Metric) ([]Result, error) {
	if p.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	scored := make([]Result, p.Len())
	for i := range scored {
		e := p.At(i)
		scored[i] = Result{
			Name:     e.Name,
			R:        e.R,
			G:        e.G,
			B:        e.B,
			Index:    i,
			Distance: metric(q, e),
		}
	}
	return scored, nil
}

func byDistance(a, b Result) int {
	return cmp.Compare(a.Distance, b.Distance)
}
