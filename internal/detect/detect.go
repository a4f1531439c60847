// Package detect runs one color pick: decode the image, shrink it, clamp the
// clicked point, sample the pixel and name the nearest palette color.
package detect

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/hueprobe/internal/config"
	"github.com/Faultbox/hueprobe/internal/imaging"
	"github.com/Faultbox/hueprobe/internal/logger"
	"github.com/Faultbox/hueprobe/pkg/match"
	"github.com/Faultbox/hueprobe/pkg/palette"
)

// Report describes a single pick.
type Report struct {
	Name      string       // image file name
	Format    string       // decoder that read the image
	Size      image.Point  // working size after FitWidth
	Requested image.Point  // point as given by the caller
	Point     image.Point  // point actually sampled
	Query     match.Query  // pixel color
	Result    match.Result // nearest palette color
}

// Clamped reports whether the requested point was outside the image.
func (r *Report) Clamped() bool {
	return r.Requested != r.Point
}

// Detector holds the palette and image settings shared by every pick.
type Detector struct {
	palette  *palette.Palette
	maxWidth int
}

// New creates a detector from configuration. The palette comes from the
// process-wide cache, so repeated calls read the table only once.
func New(cfg *config.Config) (*Detector, error) {
	source := cfg.Palette.Path
	if cfg.Palette.Builtin {
		source = palette.BuiltinSource
	}

	p, err := palette.LoadCached(source)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}

	logger.Debug("palette ready",
		zap.String("source", p.Source()),
		zap.Int("entries", p.Len()),
		zap.String("checksum", fmt.Sprintf("%016x", p.Checksum())),
	)
	if p.Len() == 0 {
		logger.Warn("palette has no entries; every match will fail", zap.String("source", p.Source()))
	}

	return NewWithPalette(p, cfg.Image.MaxWidth), nil
}

// NewWithPalette creates a detector around an already loaded palette.
func NewWithPalette(p *palette.Palette, maxWidth int) *Detector {
	return &Detector{palette: p, maxWidth: maxWidth}
}

// Palette returns the palette used for matching.
func (d *Detector) Palette() *palette.Palette {
	return d.palette
}

// PickFile reads the image at path and picks the color at pt.
func (d *Detector) PickFile(path string, pt image.Point) (*Report, error) {
	img, format, err := imaging.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return d.pick(img, format, path, pt)
}

// Pick decodes image data and picks the color at pt. name is used for
// format hints and messages.
func (d *Detector) Pick(data []byte, name string, pt image.Point) (*Report, error) {
	img, format, err := imaging.Decode(data, name)
	if err != nil {
		return nil, err
	}
	return d.pick(img, format, name, pt)
}

func (d *Detector) pick(img image.Image, format, name string, pt image.Point) (*Report, error) {
	work := imaging.FitWidth(img, d.maxWidth)
	bounds := work.Bounds()
	sampled := imaging.Clamp(pt, bounds)

	report := &Report{
		Name:      name,
		Format:    format,
		Size:      bounds.Size(),
		Requested: pt,
		Point:     sampled,
		Query:     imaging.Sample(work, sampled),
	}
	if report.Clamped() {
		logger.Debug("point clamped to image",
			zap.Stringer("requested", pt),
			zap.Stringer("sampled", sampled),
			zap.Stringer("size", report.Size),
		)
	}

	res, err := match.Match(report.Query, d.palette)
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", report.Query, err)
	}
	report.Result = res

	logger.Info("color picked",
		zap.String("image", name),
		zap.Stringer("point", sampled),
		zap.Stringer("pixel", report.Query),
		zap.String("name", res.Name),
		zap.Int("index", res.Index),
	)
	return report, nil
}

// Nearest returns up to n palette colors closest to q, best first.
func (d *Detector) Nearest(q match.Query, n int) ([]match.Result, error) {
	return match.Rank(q, d.palette, n)
}
