package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiesman99/imagecraft/internal/bitmap"
	"github.com/kiesman99/imagecraft/internal/filters"
)

func fixture(t *testing.T) *bitmap.Image {
	t.Helper()
	img, err := bitmap.New(2, 2)
	require.NoError(t, err)
	img.Pix = []bitmap.Pixel{
		{R: 255}, {G: 255},
		{B: 255}, {R: 255, G: 255, B: 255},
	}
	return img
}

func grays(values ...uint8) []bitmap.Pixel {
	pix := make([]bitmap.Pixel, len(values))
	for i, v := range values {
		pix[i] = bitmap.Pixel{R: v, G: v, B: v}
	}
	return pix
}

func TestApplyGrayscaleNegative(t *testing.T) {
	res, err := Apply(fixture(t), []Spec{{Kind: KindGrayscale}, {Kind: KindNegative}})
	require.NoError(t, err)
	require.Equal(t, 2, res.Applied)
	require.Equal(t, grays(179, 106, 226, 0), res.Image.Pix)
}

func TestApplyEmptyChain(t *testing.T) {
	img := fixture(t)
	orig := img.Clone()

	res, err := Apply(img, nil)
	require.NoError(t, err)
	require.Zero(t, res.Applied)
	require.Same(t, img, res.Image)
	require.Equal(t, orig.Pix, res.Image.Pix)
}

func TestApplyAbortsAtFailingStep(t *testing.T) {
	specs := []Spec{
		{Kind: KindGrayscale},
		{Kind: KindMedian, Window: 4},
		{Kind: KindNegative},
	}

	res, err := Apply(fixture(t), specs)
	require.Error(t, err)

	var chainErr *ChainError
	require.True(t, errors.As(err, &chainErr))
	require.Equal(t, 2, chainErr.Step)
	require.Equal(t, KindMedian, chainErr.Kind)
	require.ErrorIs(t, err, filters.ErrInvalidWindow)

	require.Equal(t, 1, res.Applied)
	require.Equal(t, grays(76, 149, 29, 255), res.Image.Pix)
}

func TestApplyUnknownKind(t *testing.T) {
	res, err := Apply(fixture(t), []Spec{{Kind: "sepia"}})
	require.ErrorIs(t, err, ErrUnknownFilter)

	var chainErr *ChainError
	require.True(t, errors.As(err, &chainErr))
	require.Equal(t, 1, chainErr.Step)
	require.Zero(t, res.Applied)
}

func TestApplyReplacesBuffer(t *testing.T) {
	img := fixture(t)

	res, err := Apply(img, []Spec{{Kind: KindCrop, Width: 1, Height: 2}, {Kind: KindNegative}})
	require.NoError(t, err)
	require.NotSame(t, img, res.Image)
	require.Equal(t, 1, res.Image.Width)
	require.Equal(t, 2, res.Image.Height)
	require.Equal(t, []bitmap.Pixel{{G: 255, B: 255}, {R: 255, G: 255}}, res.Image.Pix)

	// the source is left alone once a filter has produced a new buffer
	require.Equal(t, fixture(t).Pix, img.Pix)
}

func TestApplyContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := ApplyContext(ctx, fixture(t), []Spec{{Kind: KindNegative}})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, res.Applied)
	require.Equal(t, fixture(t).Pix, res.Image.Pix)
}

func TestApplyLogsSteps(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	_, err := Apply(fixture(t), []Spec{{Kind: KindBlur, Sigma: 0.5}, {Kind: KindMedian, Window: 2}})
	require.Error(t, err)

	out := buf.String()
	require.Contains(t, out, "filter applied")
	require.Contains(t, out, "filter=blur:0.5")
	require.Contains(t, out, "filter chain aborted")
	require.Contains(t, out, "step=2")
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in   string
		want Spec
	}{
		{"gs", Spec{Kind: KindGrayscale}},
		{"grayscale", Spec{Kind: KindGrayscale}},
		{"neg", Spec{Kind: KindNegative}},
		{"sharp", Spec{Kind: KindSharpen}},
		{"SHARPEN", Spec{Kind: KindSharpen}},
		{"edge:0.25", Spec{Kind: KindEdge, Threshold: 0.25}},
		{"blur:1.5", Spec{Kind: KindBlur, Sigma: 1.5}},
		{"med:5", Spec{Kind: KindMedian, Window: 5}},
		{"median:255", Spec{Kind: KindMedian, Window: 255}},
		{"vignette:0.8,0.4", Spec{Kind: KindVignette, Intensity: 0.8, Radius: 0.4}},
		{"zoom:0.5, 0.25, 2", Spec{Kind: KindZoom, CenterX: 0.5, CenterY: 0.25, Amount: 2}},
		{"crop:640,480", Spec{Kind: KindCrop, Width: 640, Height: 480}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			again, err := ParseSpec(got.String())
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"sepia", ErrUnknownFilter},
		{"", ErrUnknownFilter},
		{"gs:1", ErrInvalidSpec},
		{"blur", ErrInvalidSpec},
		{"blur:abc", ErrInvalidSpec},
		{"blur:0", ErrInvalidSpec},
		{"edge:1.5", ErrInvalidSpec},
		{"med:4", ErrInvalidSpec},
		{"med:-3", ErrInvalidSpec},
		{"med:3.5", ErrInvalidSpec},
		{"crop:10", ErrInvalidSpec},
		{"crop:0,10", ErrInvalidSpec},
		{"vignette:0.5,2", ErrInvalidSpec},
		{"zoom:0.5,0.5,0", ErrInvalidSpec},
		{"zoom:0.5,-1,1", ErrInvalidSpec},
		{"blur:NaN", ErrInvalidSpec},
		{"blur:Inf", ErrInvalidSpec},
		{"zoom:0.5,0.5,+Inf", ErrInvalidSpec},
		{"med:257", ErrInvalidSpec},
		{"med:20001", ErrInvalidSpec},
		{"med:4294967297", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseSpec(tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseSpecs(t *testing.T) {
	specs, err := ParseSpecs([]string{"gs", "neg", "blur:2"})
	require.NoError(t, err)
	require.Equal(t, []Spec{{Kind: KindGrayscale}, {Kind: KindNegative}, {Kind: KindBlur, Sigma: 2}}, specs)

	_, err = ParseSpecs([]string{"gs", "med:2"})
	require.ErrorIs(t, err, ErrInvalidSpec)
	require.Contains(t, err.Error(), "filter 2")
}

func TestParsedWindowOneFailsInChain(t *testing.T) {
	specs, err := ParseSpecs([]string{"neg", "med:1"})
	require.NoError(t, err)

	res, err := Apply(fixture(t), specs)
	require.ErrorIs(t, err, filters.ErrInvalidWindow)
	require.Equal(t, 1, res.Applied)
}

func TestSpecValidate(t *testing.T) {
	require.NoError(t, Spec{Kind: KindSharpen}.Validate())
	require.NoError(t, Spec{Kind: KindMedian, Window: 3}.Validate())
	require.ErrorIs(t, Spec{Kind: KindMedian, Window: 4}.Validate(), ErrInvalidSpec)
	require.ErrorIs(t, Spec{Kind: "sepia"}.Validate(), ErrUnknownFilter)
}
