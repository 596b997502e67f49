// Package pipeline runs an ordered chain of filters over a bitmap.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiesman99/imagecraft/internal/bitmap"
	"github.com/kiesman99/imagecraft/internal/filters"
)

// Result is the outcome of a chain. Image is the buffer after the last step
// that succeeded and Applied the number of such steps.
type Result struct {
	Image   *bitmap.Image
	Applied int
}

// ChainError reports the step that aborted a chain.
type ChainError struct {
	Step int // 1-based
	Kind Kind
	Err  error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("filter %d (%s): %v", e.Step, e.Kind, e.Err)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// Apply runs specs over img in order.
func Apply(img *bitmap.Image, specs []Spec) (*Result, error) {
	return ApplyContext(context.Background(), img, specs)
}

// ApplyContext runs specs over img in order, checking ctx between steps.
//
// Filters that work in place modify img. On failure the returned Result holds
// the image as it was before the failing step and the error is a *ChainError.
// An empty chain returns img unchanged.
func ApplyContext(ctx context.Context, img *bitmap.Image, specs []Spec) (*Result, error) {
	log := Logger()
	res := &Result{Image: img}

	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			return res, &ChainError{Step: i + 1, Kind: spec.Kind, Err: err}
		}

		start := time.Now()
		next, err := applyOne(res.Image, spec)
		if err != nil {
			log.Warn("filter chain aborted",
				slog.Int("step", i+1),
				slog.String("filter", spec.String()),
				slog.Any("error", err))
			return res, &ChainError{Step: i + 1, Kind: spec.Kind, Err: err}
		}

		res.Image = next
		res.Applied++

		log.Debug("filter applied",
			slog.Int("step", i+1),
			slog.String("filter", spec.String()),
			slog.Int("width", next.Width),
			slog.Int("height", next.Height),
			slog.Duration("elapsed", time.Since(start)))
	}

	return res, nil
}

// applyOne dispatches a single spec. In-place filters return img itself.
func applyOne(img *bitmap.Image, spec Spec) (*bitmap.Image, error) {
	switch spec.Kind {
	case KindCrop:
		return filters.Crop(img, spec.Width, spec.Height)
	case KindGrayscale:
		filters.Grayscale(img)
		return img, nil
	case KindNegative:
		filters.Negative(img)
		return img, nil
	case KindSharpen:
		if err := filters.Sharpen(img); err != nil {
			return nil, err
		}
		return img, nil
	case KindEdge:
		return filters.EdgeDetect(img, spec.Threshold)
	case KindBlur:
		return filters.GaussianBlur(img, spec.Sigma)
	case KindMedian:
		return filters.Median(img, spec.Window)
	case KindVignette:
		if err := filters.Vignette(img, spec.Intensity, spec.Radius); err != nil {
			return nil, err
		}
		return img, nil
	case KindZoom:
		return filters.ZoomBlur(img, spec.CenterX, spec.CenterY, spec.Amount)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, spec.Kind)
	}
}
