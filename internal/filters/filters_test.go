package filters

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiesman99/imagecraft/internal/bitmap"
)

func uniform(t *testing.T, w, h int, p bitmap.Pixel) *bitmap.Image {
	t.Helper()
	img, err := bitmap.New(w, h)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = p
	}
	return img
}

func gradient(t *testing.T, w, h int) *bitmap.Image {
	t.Helper()
	img, err := bitmap.New(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bitmap.Pixel{R: uint8(x * 40), G: uint8(y * 40), B: uint8((x + y) * 20)})
		}
	}
	return img
}

func requireParamError(t *testing.T, err error, param string) {
	t.Helper()
	require.ErrorIs(t, err, ErrInvalidParam)
	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, param, pe.Param)
}

func TestGrayscale(t *testing.T) {
	img, err := bitmap.New(2, 2)
	require.NoError(t, err)
	img.Pix = []bitmap.Pixel{{R: 255}, {G: 255}, {B: 255}, {R: 255, G: 255, B: 255}}

	Grayscale(img)

	want := []uint8{76, 149, 29, 255}
	for i, p := range img.Pix {
		require.Equal(t, bitmap.Pixel{R: want[i], G: want[i], B: want[i]}, p, "pixel %d", i)
	}
}

func TestNegativeIsInvolution(t *testing.T) {
	img := gradient(t, 7, 5)
	orig := img.Clone()

	Negative(img)
	require.Equal(t, uint8(255), img.PixelAt(0, 0).R)
	require.NotEqual(t, orig.Pix, img.Pix)

	Negative(img)
	require.Equal(t, orig.Pix, img.Pix)
}

func TestSharpenKeepsUniformImage(t *testing.T) {
	p := bitmap.Pixel{R: 90, G: 120, B: 200}
	img := uniform(t, 6, 4, p)

	require.NoError(t, Sharpen(img))
	for _, got := range img.Pix {
		require.Equal(t, p, got)
	}
}

func TestSharpenBoostsContrast(t *testing.T) {
	img := uniform(t, 5, 5, bitmap.Pixel{R: 100, G: 100, B: 100})
	img.Set(2, 2, bitmap.Pixel{R: 150, G: 150, B: 150})

	require.NoError(t, Sharpen(img))
	// 5*150 - 4*100
	require.Equal(t, uint8(255), img.PixelAt(2, 2).R)
	// 5*100 - 3*100 - 150
	require.Equal(t, uint8(50), img.PixelAt(2, 1).R)
}

func TestEdgeDetect(t *testing.T) {
	img := uniform(t, 6, 6, bitmap.Pixel{})
	for y := 0; y < 6; y++ {
		for x := 3; x < 6; x++ {
			img.Set(x, y, bitmap.Pixel{R: 255, G: 255, B: 255})
		}
	}
	orig := img.Clone()

	edges, err := EdgeDetect(img, 0.1)
	require.NoError(t, err)
	require.Equal(t, orig.Pix, img.Pix, "source must not change")

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := black
			if x == 3 {
				want = white
			}
			require.Equal(t, want, edges.PixelAt(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestEdgeDetectUniformIsBlack(t *testing.T) {
	edges, err := EdgeDetect(uniform(t, 4, 4, bitmap.Pixel{R: 200, G: 10, B: 70}), 0)
	require.NoError(t, err)
	for _, p := range edges.Pix {
		require.Equal(t, black, p)
	}
}

func TestEdgeDetectRejectsThreshold(t *testing.T) {
	for _, th := range []float64{-0.1, 1.5, math.NaN()} {
		_, err := EdgeDetect(uniform(t, 2, 2, black), th)
		requireParamError(t, err, "threshold")
	}
}

func TestGaussianBlurSpreadsPeak(t *testing.T) {
	img := uniform(t, 7, 7, black)
	img.Set(3, 3, white)

	blurred, err := GaussianBlur(img, 1)
	require.NoError(t, err)
	require.Equal(t, white, img.PixelAt(3, 3), "source must not change")

	center := blurred.PixelAt(3, 3).R
	side := blurred.PixelAt(3, 2).R
	require.Less(t, center, uint8(255))
	require.Greater(t, center, side)
	require.Greater(t, side, uint8(0))
	require.Equal(t, blurred.PixelAt(2, 3), blurred.PixelAt(4, 3))
}

func TestGaussianBlurRejectsSigma(t *testing.T) {
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := GaussianBlur(uniform(t, 2, 2, black), s)
		requireParamError(t, err, "sigma")
	}
}

func TestMedianUniform(t *testing.T) {
	p := bitmap.Pixel{R: 12, G: 34, B: 56}
	img := uniform(t, 5, 4, p)

	out, err := Median(img, 5)
	require.NoError(t, err)
	require.Equal(t, img.Pix, out.Pix)
}

func TestMedianRemovesNoise(t *testing.T) {
	gray := bitmap.Pixel{R: 100, G: 100, B: 100}
	img := uniform(t, 5, 5, gray)
	img.Set(2, 2, white)
	img.Set(0, 0, black)

	out, err := Median(img, 3)
	require.NoError(t, err)
	for _, p := range out.Pix {
		require.Equal(t, gray, p)
	}
	require.Equal(t, white, img.PixelAt(2, 2), "source must not change")
}

func TestMedianRejectsWindow(t *testing.T) {
	for _, w := range []int{-3, 0, 1, 2, 4, MaxMedianWindow + 2, 20001, math.MaxInt} {
		_, err := Median(uniform(t, 3, 3, black), w)
		requireParamError(t, err, "window")
		require.ErrorIs(t, err, ErrInvalidWindow)
	}
}

func TestMedianLargestWindow(t *testing.T) {
	p := bitmap.Pixel{R: 7, G: 8, B: 9}
	img := uniform(t, 2, 2, p)

	out, err := Median(img, MaxMedianWindow)
	require.NoError(t, err)
	require.Equal(t, img.Pix, out.Pix)
}

func TestCrop(t *testing.T) {
	img := gradient(t, 4, 4)
	img.TopDown = true

	out, err := Crop(img, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, out.Width)
	require.Equal(t, 3, out.Height)
	require.True(t, out.TopDown)
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			require.Equal(t, img.PixelAt(x, y), out.PixelAt(x, y))
		}
	}
}

func TestCropClipsToImage(t *testing.T) {
	img := gradient(t, 5, 5)

	out, err := Crop(img, 10, 10)
	require.NoError(t, err)
	require.Equal(t, 5, out.Width)
	require.Equal(t, 5, out.Height)
	require.Equal(t, img.Pix, out.Pix)
}

func TestCropRejectsSize(t *testing.T) {
	_, err := Crop(gradient(t, 3, 3), 0, 2)
	requireParamError(t, err, "width")
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = Crop(gradient(t, 3, 3), 2, -1)
	requireParamError(t, err, "height")
}

func TestVignetteZeroIntensity(t *testing.T) {
	img := gradient(t, 6, 5)
	orig := img.Clone()

	require.NoError(t, Vignette(img, 0, 0.5))
	require.Equal(t, orig.Pix, img.Pix)
}

func TestVignetteDarkensCorners(t *testing.T) {
	img := uniform(t, 5, 5, white)

	require.NoError(t, Vignette(img, 1, 0.5))
	require.Equal(t, white, img.PixelAt(2, 2))
	for _, c := range [][2]int{{0, 0}, {4, 0}, {0, 4}, {4, 4}} {
		require.Equal(t, black, img.PixelAt(c[0], c[1]))
	}
	inner := img.PixelAt(2, 1).R
	require.Less(t, inner, uint8(255))
	require.Greater(t, inner, uint8(0))
}

func TestVignetteZeroRadius(t *testing.T) {
	img := uniform(t, 3, 3, white)

	require.NoError(t, Vignette(img, 0.5, 0))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := bitmap.Pixel{R: 127, G: 127, B: 127}
			if x == 1 && y == 1 {
				want = white
			}
			require.Equal(t, want, img.PixelAt(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestVignetteRejectsParams(t *testing.T) {
	requireParamError(t, Vignette(uniform(t, 2, 2, white), 1.2, 0.5), "intensity")
	requireParamError(t, Vignette(uniform(t, 2, 2, white), 0.5, -0.1), "radius")
}

func TestZoomBlurUniform(t *testing.T) {
	p := bitmap.Pixel{R: 33, G: 66, B: 99}
	img := uniform(t, 9, 7, p)

	out, err := ZoomBlur(img, 0.3, 0.8, 2)
	require.NoError(t, err)
	for _, got := range out.Pix {
		require.Equal(t, p, got)
	}
}

func TestZoomBlurKeepsCenter(t *testing.T) {
	img := gradient(t, 5, 5)
	orig := img.Clone()

	out, err := ZoomBlur(img, 0.5, 0.5, 1)
	require.NoError(t, err)
	require.Equal(t, orig.Pix, img.Pix, "source must not change")
	require.Equal(t, img.PixelAt(2, 2), out.PixelAt(2, 2))
	require.NotEqual(t, img.PixelAt(0, 0), out.PixelAt(0, 0))
}

func TestZoomSteps(t *testing.T) {
	tests := []struct {
		amount float64
		want   int
	}{
		{0.1, 2},
		{0.2, 2},
		{0.3, 2},
		{0.5, 3},
		{1, 5},
		{3.8, 19},
		{3.9, 20},
		{10, 20},
		{math.MaxFloat64, 20},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, zoomSteps(tt.amount), "amount %v", tt.amount)
	}
}

// A single row with R = 6x zooms toward x = 0, so each output is
// 6*(x - reach*m) where reach = 0.05*amount*x and m is the weighted mean
// position of the samples: (4n-5)/(9(n-1)) for n steps.
func TestZoomBlurRamp(t *testing.T) {
	img, err := bitmap.New(41, 1)
	require.NoError(t, err)
	for x := range img.Width {
		img.Set(x, 0, bitmap.Pixel{R: uint8(6 * x)})
	}

	tests := []struct {
		name   string
		amount float64
		x      int
		want   uint8
	}{
		{"center copied", 1, 0, 0},               // distance 0
		{"five steps near", 1, 10, 59},           // 60 - 6*0.5*15/36
		{"five steps far", 1, 40, 235},           // 240 - 6*2*15/36
		{"clamped to two steps", 0.2, 40, 239},   // 240 - 6*0.4/3
		{"clamped to twenty steps", 10, 40, 187}, // 240 - 6*20*75/171
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ZoomBlur(img, 0, 0.5, tt.amount)
			require.NoError(t, err)
			require.Equal(t, bitmap.Pixel{R: tt.want}, out.PixelAt(tt.x, 0))
		})
	}
}

func TestZoomBlurRejectsParams(t *testing.T) {
	img := uniform(t, 3, 3, white)

	_, err := ZoomBlur(img, -0.1, 0.5, 1)
	requireParamError(t, err, "center_x")

	_, err = ZoomBlur(img, 0.5, 1.1, 1)
	requireParamError(t, err, "center_y")

	_, err = ZoomBlur(img, 0.5, 0.5, 0)
	requireParamError(t, err, "amount")

	_, err = ZoomBlur(img, 0.5, 0.5, math.Inf(1))
	requireParamError(t, err, "amount")
}
