package filters

import (
	"github.com/kiesman99/imagecraft/internal/bitmap"
)

// Crop returns the top-left width×height region of img. Requests larger than
// the image are clipped to its size.
func Crop(img *bitmap.Image, width, height int) (*bitmap.Image, error) {
	if width <= 0 {
		return nil, &ParamError{Filter: "crop", Param: "width", Value: width, Reason: "must be positive", Kind: ErrInvalidSize}
	} else if height <= 0 {
		return nil, &ParamError{Filter: "crop", Param: "height", Value: height, Reason: "must be positive", Kind: ErrInvalidSize}
	}

	width = min(width, img.Width)
	height = min(height, img.Height)

	cropped, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}
	cropped.TopDown = img.TopDown
	cropped.XPixelsPerM = img.XPixelsPerM
	cropped.YPixelsPerM = img.YPixelsPerM

	for row := range height {
		copy(cropped.Row(row), img.Row(row)[:width])
	}

	return cropped, nil
}
