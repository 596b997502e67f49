package kernel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kiesman99/imagecraft/internal/bitmap"
)

// Workers bounds the number of goroutines used by ForEachRow. Zero means
// runtime.GOMAXPROCS(0).
var Workers = 0

func workers(rows int) int {
	n := Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > rows {
		n = rows
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ForEachRow calls fn once for every row in [0, height), spreading contiguous
// bands of rows over at most Workers goroutines. fn must only write to its
// own row of any shared output.
func ForEachRow(height int, fn func(y int)) {
	n := workers(height)
	if n == 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	band := (height + n - 1) / n

	var g errgroup.Group
	g.SetLimit(n)
	for start := 0; start < height; start += band {
		end := min(start+band, height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Convolve applies k to every pixel of src and returns the result as a new
// image of the same size. Neighbours outside the image are replaced by the
// nearest edge pixel. src is not modified.
func Convolve(src *bitmap.Image, k *Kernel) *bitmap.Image {
	dst := src.NewLike()
	z := k.Radius()

	ForEachRow(src.Height, func(y int) {
		out := dst.Row(y)
		for x := range out {
			var r, g, b float64

			for p := -z; p <= z; p++ {
				row := src.Row(bitmap.ClampIndex(y+p, src.Height))
				weights := k.weights[(p+z)*k.size : (p+z+1)*k.size]

				for q := -z; q <= z; q++ {
					w := weights[q+z]
					if w == 0 {
						continue
					}
					px := row[bitmap.ClampIndex(x+q, src.Width)]
					r += float64(px.R) * w
					g += float64(px.G) * w
					b += float64(px.B) * w
				}
			}

			if k.normalizer != 0 {
				r /= k.normalizer
				g /= k.normalizer
				b /= k.normalizer
			}

			out[x] = bitmap.Pixel{R: bitmap.ClampByte(r), G: bitmap.ClampByte(g), B: bitmap.ClampByte(b)}
		}
	})

	return dst
}
