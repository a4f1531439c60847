// Package imaging turns uploaded image files into pixels that can be
// matched against a palette.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders. PNG, JPEG and GIF come from the standard library,
	// BMP, TIFF and WebP from golang.org/x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError reports an image that could not be read or decoded.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding image %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode decodes image data. The format is sniffed from the data, except for
// TGA which has no magic and is chosen by the ".tga" extension of name.
func Decode(data []byte, name string) (image.Image, string, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := decodeTGA(data)
		if err != nil {
			return nil, "", &DecodeError{Name: name, Err: err}
		}
		return img, "tga", nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Name: name, Err: err}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, "", &DecodeError{Name: name, Err: fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())}
	}
	return img, format, nil
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &DecodeError{Name: path, Err: err}
	}
	return Decode(data, path)
}
