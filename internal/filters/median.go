package filters

import (
	"fmt"
	"slices"

	"github.com/kiesman99/imagecraft/internal/bitmap"
	"github.com/kiesman99/imagecraft/internal/kernel"
)

// MaxMedianWindow is the largest window Median accepts.
const MaxMedianWindow = 255

// Median returns a copy of img where every channel of every pixel is the
// median of that channel over a window×window neighbourhood. Neighbours
// outside the image are clamped to the nearest edge.
func Median(img *bitmap.Image, window int) (*bitmap.Image, error) {
	if window < 3 || window%2 == 0 {
		return nil, &ParamError{Filter: "median", Param: "window", Value: window, Reason: "must be odd and at least 3", Kind: ErrInvalidWindow}
	}
	if window > MaxMedianWindow {
		return nil, &ParamError{Filter: "median", Param: "window", Value: window, Reason: fmt.Sprintf("must be at most %d", MaxMedianWindow), Kind: ErrInvalidWindow}
	}

	dst := img.Clone()
	half := window / 2
	count := window * window

	kernel.ForEachRow(img.Height, func(y int) {
		reds := make([]uint8, count)
		greens := make([]uint8, count)
		blues := make([]uint8, count)

		out := dst.Row(y)
		for x := range out {
			n := 0
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					p := img.Clamped(x+dx, y+dy)
					reds[n] = p.R
					greens[n] = p.G
					blues[n] = p.B
					n++
				}
			}

			slices.Sort(reds)
			slices.Sort(greens)
			slices.Sort(blues)

			out[x] = bitmap.Pixel{R: reds[count/2], G: greens[count/2], B: blues[count/2]}
		}
	})

	return dst, nil
}
