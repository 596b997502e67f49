package filters

import (
	"math"

	"github.com/kiesman99/imagecraft/internal/bitmap"
)

// Vignette darkens img toward its corners. Inside radius*maxDistance the
// brightness falls off linearly with distance from the center; beyond it every
// pixel is scaled by 1-intensity. The center pixel is never changed.
func Vignette(img *bitmap.Image, intensity, radius float64) error {
	if !unitRange(intensity) {
		return &ParamError{Filter: "vignette", Param: "intensity", Value: intensity, Reason: "must be in [0, 1]"}
	}
	if !unitRange(radius) {
		return &ParamError{Filter: "vignette", Param: "radius", Value: radius, Reason: "must be in [0, 1]"}
	}

	cx := float64(img.Width / 2)
	cy := float64(img.Height / 2)
	maxDistance := math.Sqrt(cx*cx + cy*cy)
	vignetteRadius := radius * maxDistance

	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for x, p := range row {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			f := vignetteFactor(d, vignetteRadius, intensity)

			row[x] = bitmap.Pixel{
				R: bitmap.ClampByte(float64(p.R) * f),
				G: bitmap.ClampByte(float64(p.G) * f),
				B: bitmap.ClampByte(float64(p.B) * f),
			}
		}
	}

	return nil
}

func vignetteFactor(d, vignetteRadius, intensity float64) float64 {
	if d == 0 {
		return 1
	}
	if d < vignetteRadius {
		return max(0, 1-(d/vignetteRadius)*intensity)
	}
	return 1 - intensity
}
