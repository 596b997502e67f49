package filters

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParam is matched by every ParamError.
	ErrInvalidParam = errors.New("invalid filter parameter")

	ErrInvalidWindow = errors.New("median window must be odd and at least 3")
	ErrInvalidSize   = errors.New("crop size must be positive")
)

// ParamError reports a filter parameter outside the filter's domain.
type ParamError struct {
	Filter string
	Param  string
	Value  any
	Reason string

	// Kind optionally narrows ErrInvalidParam to a filter specific sentinel.
	Kind error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v: %s", e.Filter, e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() []error {
	if e.Kind != nil {
		return []error{ErrInvalidParam, e.Kind}
	}
	return []error{ErrInvalidParam}
}

// unitRange reports whether v lies in [0, 1]. NaN is rejected.
func unitRange(v float64) bool {
	return v >= 0 && v <= 1
}
