package filters

import (
	"math"

	"github.com/kiesman99/imagecraft/internal/bitmap"
	"github.com/kiesman99/imagecraft/internal/kernel"
)

const (
	zoomMinSteps = 2
	zoomMaxSteps = 20
	zoomReach    = 0.05
)

// ZoomBlur returns a copy of img blurred radially toward the point
// (centerX*(W-1), centerY*(H-1)). Each output pixel averages samples taken
// along the line to that point, weighted from 1 at the pixel down to 0.5 at
// the innermost sample.
func ZoomBlur(img *bitmap.Image, centerX, centerY, amount float64) (*bitmap.Image, error) {
	if !unitRange(centerX) {
		return nil, &ParamError{Filter: "zoom", Param: "center_x", Value: centerX, Reason: "must be in [0, 1]"}
	}
	if !unitRange(centerY) {
		return nil, &ParamError{Filter: "zoom", Param: "center_y", Value: centerY, Reason: "must be in [0, 1]"}
	}
	if !(amount > 0) || math.IsInf(amount, 0) {
		return nil, &ParamError{Filter: "zoom", Param: "amount", Value: amount, Reason: "must be positive"}
	}

	dst := img.NewLike()
	zx := centerX * float64(img.Width-1)
	zy := centerY * float64(img.Height-1)
	steps := zoomSteps(amount)
	last := float64(steps - 1)

	kernel.ForEachRow(img.Height, func(y int) {
		out := dst.Row(y)
		for x := range out {
			dx := zx - float64(x)
			dy := zy - float64(y)
			distance := math.Hypot(dx, dy)
			if distance < 0.5 {
				out[x] = img.PixelAt(x, y)
				continue
			}

			ux, uy := dx/distance, dy/distance
			length := amount * zoomReach * distance

			var r, g, b, total float64
			for i := range steps {
				frac := float64(i) / last
				t := frac * length
				sr, sg, sb := bilinear(img, float64(x)+ux*t, float64(y)+uy*t)

				w := 1 - 0.5*frac
				r += sr * w
				g += sg * w
				b += sb * w
				total += w
			}

			out[x] = bitmap.Pixel{
				R: bitmap.ClampByte(math.Round(r / total)),
				G: bitmap.ClampByte(math.Round(g / total)),
				B: bitmap.ClampByte(math.Round(b / total)),
			}
		}
	})

	return dst, nil
}

// zoomSteps returns round(5*amount) clamped into [zoomMinSteps, zoomMaxSteps].
func zoomSteps(amount float64) int {
	return int(math.Round(min(max(amount*5, zoomMinSteps), zoomMaxSteps)))
}

// bilinear samples img at a fractional position, clamping to the edges.
func bilinear(img *bitmap.Image, fx, fy float64) (r, g, b float64) {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	p00 := img.Clamped(x0, y0)
	p10 := img.Clamped(x0+1, y0)
	p01 := img.Clamped(x0, y0+1)
	p11 := img.Clamped(x0+1, y0+1)

	lerp := func(a, b, c, d uint8) float64 {
		top := float64(a)*(1-tx) + float64(b)*tx
		bottom := float64(c)*(1-tx) + float64(d)*tx
		return top*(1-ty) + bottom*ty
	}

	return lerp(p00.R, p10.R, p01.R, p11.R),
		lerp(p00.G, p10.G, p01.G, p11.G),
		lerp(p00.B, p10.B, p01.B, p11.B)
}
