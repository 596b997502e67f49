// Package bitmap reads and writes 24-bit uncompressed BMP files and holds the
// decoded pixels in a flat, top-down RGB buffer that every filter works on.
package bitmap

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is one RGB sample.
type Pixel struct {
	R, G, B uint8
}

// Image is an in-memory RGB pixel grid. Pix holds Width*Height pixels in
// visual top-down order: (x, y) lives at Pix[y*Width+x] and y=0 is the top row.
type Image struct {
	Width  int
	Height int
	Pix    []Pixel

	// TopDown records the row order of the file the image came from, so it
	// can be written back the same way. New images default to bottom-up.
	TopDown bool

	XPixelsPerM int32
	YPixelsPerM int32
}

// MaxPixels caps the size of a single buffer.
var MaxPixels int64 = 10000 * 10000

// New allocates a black image of the given size.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, formatErr(ErrBadDimensions, "%dx%d", width, height)
	}
	if int64(width)*int64(height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}

	return &Image{
		Width:       width,
		Height:      height,
		Pix:         make([]Pixel, width*height),
		XPixelsPerM: DefaultResolution,
		YPixelsPerM: DefaultResolution,
	}, nil
}

// Offset returns the index of (x, y) in Pix.
func (m *Image) Offset(x, y int) int {
	return y*m.Width + x
}

// PixelAt returns the pixel at (x, y). Coordinates must be in range.
func (m *Image) PixelAt(x, y int) Pixel {
	return m.Pix[y*m.Width+x]
}

// Set stores p at (x, y). Coordinates must be in range.
func (m *Image) Set(x, y int, p Pixel) {
	m.Pix[y*m.Width+x] = p
}

// Clamped returns the pixel at (x, y) with out-of-range coordinates moved to
// the nearest edge.
func (m *Image) Clamped(x, y int) Pixel {
	return m.Pix[ClampIndex(y, m.Height)*m.Width+ClampIndex(x, m.Width)]
}

// Row returns the pixels of row y.
func (m *Image) Row(y int) []Pixel {
	return m.Pix[y*m.Width : (y+1)*m.Width]
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	c := *m
	c.Pix = make([]Pixel, len(m.Pix))
	copy(c.Pix, m.Pix)
	return &c
}

// NewLike allocates a black image with the same size and file metadata.
func (m *Image) NewLike() *Image {
	c := *m
	c.Pix = make([]Pixel, len(m.Pix))
	return &c
}

// CopyFrom overwrites the pixels of m with those of src.
func (m *Image) CopyFrom(src *Image) error {
	if src.Width != m.Width || src.Height != m.Height {
		return fmt.Errorf("copy %dx%d into %dx%d: size mismatch", src.Width, src.Height, m.Width, m.Height)
	}
	copy(m.Pix, src.Pix)
	return nil
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{}
	}
	p := m.Pix[y*m.Width+x]
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}

// FromImage converts any image into a bitmap buffer. Alpha is dropped.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	m, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			m.Pix[y*m.Width+x] = Pixel{R: c.R, G: c.G, B: c.B}
		}
	}

	return m, nil
}

// ClampIndex moves i into [0, n).
func ClampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ClampByte limits v to [0, 255] and truncates it to a byte.
func ClampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
