// Package craft runs a filter chain from an input file to an output file.
package craft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kiesman99/imagecraft/internal/pipeline"
	"github.com/kiesman99/imagecraft/pkg/imageio"
)

// DefaultOutput is written when no output path is given.
const DefaultOutput = "output.bmp"

// Options configures a single run.
type Options struct {
	Input  string
	Output string

	// Format of the output. Empty picks it from the output extension.
	Format imageio.Format

	Filters []pipeline.Spec
}

// Report describes a finished run.
type Report struct {
	Input        string
	Output       string
	InputFormat  imageio.Format
	OutputFormat imageio.Format
	Width        int
	Height       int
	Applied      int
	OutputBytes  int64
	Elapsed      time.Duration
}

// Crafter handles the file level processing
type Crafter struct {
	options *Options
}

// NewCrafter creates a new crafter instance
func NewCrafter(opts *Options) *Crafter {
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.Format == "" {
		opts.Format = imageio.FormatFromPath(opts.Output)
	}

	return &Crafter{options: opts}
}

// Run reads the input, applies the filters and writes the output. When a
// filter fails nothing is written and the error is a *pipeline.ChainError.
func (c *Crafter) Run(ctx context.Context) (*Report, error) {
	opts := c.options
	log := pipeline.Logger()
	start := time.Now()

	if opts.Input == "" {
		return nil, errors.New("no input file given")
	}

	img, inFormat, err := imageio.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Input, err)
	}

	log.Info("Image loaded",
		slog.String("path", opts.Input),
		slog.String("format", string(inFormat)),
		slog.Int("width", img.Width),
		slog.Int("height", img.Height))

	res, err := pipeline.ApplyContext(ctx, img, opts.Filters)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := imageio.WriteFile(opts.Output, res.Image, opts.Format); err != nil {
		return nil, fmt.Errorf("write %s: %w", opts.Output, err)
	}

	report := &Report{
		Input:        opts.Input,
		Output:       opts.Output,
		InputFormat:  inFormat,
		OutputFormat: opts.Format,
		Width:        res.Image.Width,
		Height:       res.Image.Height,
		Applied:      res.Applied,
		Elapsed:      time.Since(start),
	}
	if st, err := os.Stat(opts.Output); err == nil {
		report.OutputBytes = st.Size()
	}

	log.Info("Image written",
		slog.String("path", report.Output),
		slog.String("format", string(report.OutputFormat)),
		slog.Int("filters", report.Applied),
		slog.String("size", humanize.Bytes(uint64(report.OutputBytes))),
		slog.Duration("elapsed", report.Elapsed))

	return report, nil
}
