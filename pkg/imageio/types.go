package imageio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an encoded image format.
type Format string

// Supported formats. Only BMP and PNG can be written.
const (
	FormatBMP  Format = "bmp"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ParseFormat returns the output format called name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "bmp":
		return FormatBMP, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q (want bmp or png)", ErrUnsupportedFormat, name)
}

// FormatFromPath picks the output format from the file extension, defaulting
// to BMP.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatBMP
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/bmp"
	}
}
