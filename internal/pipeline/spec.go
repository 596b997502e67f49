package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kiesman99/imagecraft/internal/filters"
)

// Kind identifies a filter.
type Kind string

const (
	KindCrop      Kind = "crop"
	KindGrayscale Kind = "grayscale"
	KindNegative  Kind = "negative"
	KindSharpen   Kind = "sharpen"
	KindEdge      Kind = "edge"
	KindBlur      Kind = "blur"
	KindMedian    Kind = "median"
	KindVignette  Kind = "vignette"
	KindZoom      Kind = "zoom"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrInvalidSpec   = errors.New("invalid filter arguments")
)

// aliases maps every accepted name to its Kind.
var aliases = map[string]Kind{
	"crop":      KindCrop,
	"gs":        KindGrayscale,
	"grayscale": KindGrayscale,
	"neg":       KindNegative,
	"negative":  KindNegative,
	"sharp":     KindSharpen,
	"sharpen":   KindSharpen,
	"edge":      KindEdge,
	"blur":      KindBlur,
	"med":       KindMedian,
	"median":    KindMedian,
	"vignette":  KindVignette,
	"zoom":      KindZoom,
}

// Spec describes one filter and its parameters. Only the fields belonging to
// Kind are used.
type Spec struct {
	Kind Kind `json:"kind"`

	// crop
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// edge
	Threshold float64 `json:"threshold,omitempty"`

	// blur
	Sigma float64 `json:"sigma,omitempty"`

	// median
	Window int `json:"window,omitempty"`

	// vignette
	Intensity float64 `json:"intensity,omitempty"`
	Radius    float64 `json:"radius,omitempty"`

	// zoom
	CenterX float64 `json:"center_x,omitempty"`
	CenterY float64 `json:"center_y,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
}

type param struct {
	name  string
	rule  string
	field func(*Spec) any
}

// params lists, in command line order, the parameters of every kind and the
// validator rule each must satisfy.
var params = map[Kind][]param{
	KindCrop: {
		{name: "width", rule: "gt=0", field: func(s *Spec) any { return &s.Width }},
		{name: "height", rule: "gt=0", field: func(s *Spec) any { return &s.Height }},
	},
	KindGrayscale: nil,
	KindNegative:  nil,
	KindSharpen:   nil,
	KindEdge: {
		{name: "threshold", rule: "gte=0,lte=1", field: func(s *Spec) any { return &s.Threshold }},
	},
	KindBlur: {
		{name: "sigma", rule: "gt=0", field: func(s *Spec) any { return &s.Sigma }},
	},
	KindMedian: {
		{name: "window", rule: "gt=0,odd,lte=" + strconv.Itoa(filters.MaxMedianWindow), field: func(s *Spec) any { return &s.Window }},
	},
	KindVignette: {
		{name: "intensity", rule: "gte=0,lte=1", field: func(s *Spec) any { return &s.Intensity }},
		{name: "radius", rule: "gte=0,lte=1", field: func(s *Spec) any { return &s.Radius }},
	},
	KindZoom: {
		{name: "center_x", rule: "gte=0,lte=1", field: func(s *Spec) any { return &s.CenterX }},
		{name: "center_y", rule: "gte=0,lte=1", field: func(s *Spec) any { return &s.CenterY }},
		{name: "amount", rule: "gt=0", field: func(s *Spec) any { return &s.Amount }},
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("odd", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 != 0
	})
	return v
}

// Validate checks that the kind is known and every parameter is in range.
// Median windows only need to be odd and bounded here; the filter itself
// rejects windows smaller than 3.
func (s Spec) Validate() error {
	ps, ok := params[s.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, s.Kind)
	}

	for _, p := range ps {
		var value any
		switch v := p.field(&s).(type) {
		case *int:
			value = *v
		case *float64:
			value = *v
		}
		if err := validate.Var(value, p.rule); err != nil {
			return fmt.Errorf("%w: %s %s=%v must satisfy %q", ErrInvalidSpec, s.Kind, p.name, value, p.rule)
		}
	}

	return nil
}

// String formats s the way ParseSpec reads it, using the canonical name.
func (s Spec) String() string {
	ps := params[s.Kind]
	if len(ps) == 0 {
		return string(s.Kind)
	}

	values := make([]string, len(ps))
	for i, p := range ps {
		switch v := p.field(&s).(type) {
		case *int:
			values[i] = strconv.Itoa(*v)
		case *float64:
			values[i] = strconv.FormatFloat(*v, 'g', -1, 64)
		}
	}
	return string(s.Kind) + ":" + strings.Join(values, ",")
}

// ParseSpec reads a filter written as name[:p1,p2,...], for example "gs",
// "blur:1.5" or "crop:640,480". Names may use their short aliases.
func ParseSpec(text string) (Spec, error) {
	name, args, hasArgs := strings.Cut(strings.TrimSpace(text), ":")

	kind, ok := aliases[strings.ToLower(name)]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}

	var fields []string
	if hasArgs {
		fields = strings.Split(args, ",")
	}

	ps := params[kind]
	if len(fields) != len(ps) {
		return Spec{}, fmt.Errorf("%w: %s expects %d parameter(s), got %d", ErrInvalidSpec, kind, len(ps), len(fields))
	}

	spec := Spec{Kind: kind}
	for i, p := range ps {
		field := strings.TrimSpace(fields[i])
		switch dst := p.field(&spec).(type) {
		case *int:
			n, err := strconv.Atoi(field)
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %s %s %q is not an integer", ErrInvalidSpec, kind, p.name, field)
			}
			*dst = n
		case *float64:
			f, err := strconv.ParseFloat(field, 64)
			if err != nil || math.IsInf(f, 0) {
				return Spec{}, fmt.Errorf("%w: %s %s %q is not a finite number", ErrInvalidSpec, kind, p.name, field)
			}
			*dst = f
		}
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// ParseSpecs parses every entry of texts in order. The error names the
// 1-based position of the first entry that fails.
func ParseSpecs(texts []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(texts))
	for i, text := range texts {
		spec, err := ParseSpec(text)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%q): %w", i+1, text, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
