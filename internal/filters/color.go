// Package filters implements the image transforms applied by a filter chain.
//
// Grayscale, Negative, Sharpen and Vignette modify the image in place. Crop,
// EdgeDetect, GaussianBlur, Median and ZoomBlur return a new image and leave
// their input untouched.
package filters

import (
	"github.com/kiesman99/imagecraft/internal/bitmap"
)

// Luma returns 1000 times the ITU-R 601-2 luminance of p.
func Luma(p bitmap.Pixel) int {
	return 299*int(p.R) + 587*int(p.G) + 114*int(p.B)
}

// Grayscale replaces every pixel with its luminance, truncated to a byte.
func Grayscale(img *bitmap.Image) {
	for i, p := range img.Pix {
		gray := uint8(Luma(p) / 1000)
		img.Pix[i] = bitmap.Pixel{R: gray, G: gray, B: gray}
	}
}

// Negative inverts every channel.
func Negative(img *bitmap.Image) {
	for i, p := range img.Pix {
		img.Pix[i] = bitmap.Pixel{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B}
	}
}
