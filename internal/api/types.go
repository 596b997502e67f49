// Package api defines the HTTP interface of the imagecraft server: the
// request and response bodies, the ServerInterface implemented by
// internal/server, and the chi wiring that binds query parameters before
// calling it.
package api

import (
	"time"
)

// Defines values for HealthResponseStatus.
const (
	Healthy HealthResponseStatus = "healthy"
)

// Defines values for ProcessImageParamsFormat.
const (
	Bmp ProcessImageParamsFormat = "bmp"
	Png ProcessImageParamsFormat = "png"
)

// Error codes carried in ErrorResponse.Error.
const (
	INVALIDREQUEST  = "INVALID_REQUEST"
	INVALIDFILTER   = "INVALID_FILTER"
	INVALIDIMAGE    = "INVALID_IMAGE"
	FILTERFAILED    = "FILTER_FAILED"
	PAYLOADTOOLARGE = "PAYLOAD_TOO_LARGE"
	REQUESTTIMEOUT  = "REQUEST_TIMEOUT"
	INTERNALERROR   = "INTERNAL_ERROR"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	// Details Additional error details
	Details *map[string]interface{} `json:"details,omitempty"`

	// Error Error code
	Error string `json:"error"`

	// Message Human-readable error message
	Message string `json:"message"`

	// RequestId Request ID for tracking
	RequestId *string `json:"request_id,omitempty"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status    HealthResponseStatus `json:"status"`
	Timestamp time.Time            `json:"timestamp"`

	// Uptime Server uptime in seconds
	Uptime  *int    `json:"uptime,omitempty"`
	Version *string `json:"version,omitempty"`
}

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

// ValidationResponse defines model for ValidationResponse.
type ValidationResponse struct {
	Valid       bool   `json:"valid"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BitCount    int    `json:"bit_count"`
	Compression int    `json:"compression"`
	FileSize    int64  `json:"file_size"`
	DataOffset  int64  `json:"data_offset"`
	Orientation string `json:"orientation"`
}

// ProcessImageParams defines parameters for ProcessImage.
type ProcessImageParams struct {
	// Filter Filters to apply in order, each written as name[:p1,p2,...]
	Filter *[]string `form:"filter,omitempty" json:"filter,omitempty"`

	// Format Output image format
	Format *ProcessImageParamsFormat `form:"format,omitempty" json:"format,omitempty"`
}

// ProcessImageParamsFormat defines parameters for ProcessImage.
type ProcessImageParamsFormat string
