package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/hueprobe/pkg/match"
)

// DefaultMaxWidth is the widest image kept at full size.
const DefaultMaxWidth = 600

// Opaque copies img into a new straight-alpha image with its origin at
// (0, 0) and every pixel fully opaque. Each pixel keeps its straight RGB
// values, so a transparent pixel keeps its color instead of turning black.
func Opaque(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):][:b.Dx()*4]
			out := dst.Pix[y*dst.Stride:][:b.Dx()*4]
			copy(out, row)
			for i := 3; i < len(out); i += 4 {
				out[i] = 0xff
			}
		}
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 0xff
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}

// FitWidth drops alpha and shrinks img to maxWidth pixels wide, keeping the
// aspect ratio (height truncated, at least 1). Narrower images and
// maxWidth <= 0 leave the size unchanged. The result is always a new opaque
// image starting at (0, 0).
func FitWidth(img image.Image, maxWidth int) *image.NRGBA {
	// Scaling premultiplies alpha, so it must see opaque pixels only.
	src := Opaque(img)
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}

	ratio := float64(maxWidth) / float64(b.Dx())
	height := max(int(float64(b.Dy())*ratio), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Clamp moves pt inside bounds: Min.X <= x < Max.X and Min.Y <= y < Max.Y.
// bounds must not be empty.
func Clamp(pt image.Point, bounds image.Rectangle) image.Point {
	return image.Point{
		X: min(max(pt.X, bounds.Min.X), bounds.Max.X-1),
		Y: min(max(pt.Y, bounds.Min.Y), bounds.Max.Y-1),
	}
}

// Sample returns the color at pt as a query. Alpha is discarded; channels are
// the straight (non-premultiplied) 8-bit values. pt must already be in bounds.
func Sample(img image.Image, pt image.Point) match.Query {
	c := color.NRGBAModel.Convert(img.At(pt.X, pt.Y)).(color.NRGBA)
	return match.Query{R: int(c.R), G: int(c.G), B: int(c.B)}
}
