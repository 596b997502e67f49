package filters

import (
	"github.com/kiesman99/imagecraft/internal/bitmap"
	"github.com/kiesman99/imagecraft/internal/kernel"
)

var (
	white = bitmap.Pixel{R: 255, G: 255, B: 255}
	black = bitmap.Pixel{}
)

// Sharpen convolves img with the sharpening kernel and writes the result
// back into img.
func Sharpen(img *bitmap.Image) error {
	return img.CopyFrom(kernel.Convolve(img, kernel.Sharpen))
}

// EdgeDetect returns a black and white edge map of img. Pixels whose
// Laplacian response on the grayscale image exceeds threshold*255 are white.
func EdgeDetect(img *bitmap.Image, threshold float64) (*bitmap.Image, error) {
	if !unitRange(threshold) {
		return nil, &ParamError{Filter: "edge", Param: "threshold", Value: threshold, Reason: "must be in [0, 1]"}
	}

	gray := img.Clone()
	Grayscale(gray)

	edges := kernel.Convolve(gray, kernel.Laplacian)

	// Compared in thousandths to match Luma
	limit := threshold * 255 * 1000
	for i, p := range edges.Pix {
		if float64(Luma(p)) > limit {
			edges.Pix[i] = white
		} else {
			edges.Pix[i] = black
		}
	}

	return edges, nil
}

// GaussianBlur returns img blurred with a Gaussian kernel of the given sigma.
func GaussianBlur(img *bitmap.Image, sigma float64) (*bitmap.Image, error) {
	k, err := kernel.Gaussian(sigma)
	if err != nil {
		return nil, &ParamError{Filter: "blur", Param: "sigma", Value: sigma, Reason: "must be positive and finite"}
	}
	return kernel.Convolve(img, k), nil
}
