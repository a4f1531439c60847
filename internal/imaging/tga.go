package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTypeUncompressed = 2  // Uncompressed true-color
	tgaTypeRLE          = 10 // RLE compressed true-color
)

var errTGATruncated = errors.New("TGA data truncated")

// decodeTGA decodes uncompressed or RLE true-color TGA data (24 or 32 bpp).
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, errTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != tgaTypeUncompressed && imageType != tgaTypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty TGA image %dx%d", width, height)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	src := data[offset:]
	bytesPerPixel := bpp / 8
	pixelCount := width * height

	// Reject short data before allocating; the header alone can ask for GiBs.
	// An RLE packet covers at most 128 pixels and carries at least one pixel.
	minLen := pixelCount * bytesPerPixel
	if imageType == tgaTypeRLE {
		minLen = (pixelCount + 127) / 128 * (1 + bytesPerPixel)
	}
	if len(src) < minLen {
		return nil, errTGATruncated
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	// set writes the n-th pixel in file order, honoring the row direction.
	set := func(n int, px []byte) {
		x, y := n%width, n/width
		if !topToBottom {
			y = height - 1 - y
		}
		a := uint8(255)
		if bytesPerPixel == 4 {
			a = px[3]
		}
		img.SetNRGBA(x, y, color.NRGBA{R: px[2], G: px[1], B: px[0], A: a})
	}

	if imageType == tgaTypeUncompressed {
		for n := 0; n < pixelCount; n++ {
			set(n, src[n*bytesPerPixel:])
		}
		return img, nil
	}

	n, i := 0, 0
	for n < pixelCount {
		if i >= len(src) {
			return nil, errTGATruncated
		}
		packet := src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run: one pixel repeated count times.
			if i+bytesPerPixel > len(src) {
				return nil, errTGATruncated
			}
			px := src[i : i+bytesPerPixel]
			i += bytesPerPixel
			for k := 0; k < count && n < pixelCount; k++ {
				set(n, px)
				n++
			}
			continue
		}

		// Raw: count literal pixels.
		for k := 0; k < count && n < pixelCount; k++ {
			if i+bytesPerPixel > len(src) {
				return nil, errTGATruncated
			}
			set(n, src[i:i+bytesPerPixel])
			i += bytesPerPixel
			n++
		}
	}

	return img, nil
}
