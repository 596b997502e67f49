// Package imageio converts between encoded image files and bitmap buffers.
// BMP goes through the strict 24-bit codec; PNG and JPEG input go through the
// standard library decoders.
package imageio

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/kiesman99/imagecraft/internal/bitmap"
)

var (
	bmpMagic  = []byte{'B', 'M'}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
	jpegMagic = []byte{0xFF, 0xD8}
)

// Sniff detects the format of data from its leading bytes.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG, nil
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG, nil
	case bytes.HasPrefix(data, bmpMagic):
		return FormatBMP, nil
	}
	return "", fmt.Errorf("%w: unrecognized signature", ErrUnsupportedFormat)
}

// Decode detects the format of data and decodes it.
func Decode(data []byte) (*bitmap.Image, Format, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, "", err
	}

	r := bytes.NewReader(data)
	switch format {
	case FormatBMP:
		img, err := bitmap.Decode(r)
		return img, format, err
	case FormatPNG:
		src, err := png.Decode(r)
		if err != nil {
			return nil, format, fmt.Errorf("decode png: %w", err)
		}
		img, err := bitmap.FromImage(src)
		return img, format, err
	default:
		src, err := jpeg.Decode(r)
		if err != nil {
			return nil, format, fmt.Errorf("decode jpeg: %w", err)
		}
		img, err := bitmap.FromImage(src)
		return img, format, err
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *bitmap.Image, format Format) error {
	switch format {
	case FormatBMP:
		return bitmap.Encode(w, img)
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return &bitmap.EncodeError{Stage: "png", Err: err}
		}
		return nil
	}
	return fmt.Errorf("%w: cannot write %q", ErrUnsupportedFormat, format)
}
