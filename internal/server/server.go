package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kiesman99/imagecraft/internal/api"
	"github.com/kiesman99/imagecraft/internal/bitmap"
	"github.com/kiesman99/imagecraft/internal/pipeline"
	"github.com/kiesman99/imagecraft/pkg/imageio"
)

// DefaultMaxBodyBytes limits uploads when NewServer is given no limit.
const DefaultMaxBodyBytes = 64 << 20

// Server implements the ServerInterface from the generated API
type Server struct {
	startTime    time.Time
	version      string
	maxBodyBytes int64
}

// NewServer creates a new server instance. maxBodyBytes <= 0 selects
// DefaultMaxBodyBytes.
func NewServer(version string, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		startTime:    time.Now(),
		version:      version,
		maxBodyBytes: maxBodyBytes,
	}
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := api.HealthResponse{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}

	s.writeJSON(w, http.StatusOK, response)
}

// ProcessImage decodes the request body, runs the requested filters and
// responds with the encoded result.
func (s *Server) ProcessImage(w http.ResponseWriter, r *http.Request, params api.ProcessImageParams) {
	requestID := generateRequestID()

	var filterArgs []string
	if params.Filter != nil {
		filterArgs = *params.Filter
	}
	specs, err := pipeline.ParseSpecs(filterArgs)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDFILTER, err.Error(), &requestID, nil)
		return
	}

	format := imageio.FormatBMP
	if params.Format != nil {
		switch *params.Format {
		case api.Bmp:
			format = imageio.FormatBMP
		case api.Png:
			format = imageio.FormatPNG
		default:
			s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDREQUEST,
				fmt.Sprintf("unsupported output format %q", *params.Format), &requestID, nil)
			return
		}
	}

	body, ok := s.readBody(w, r, requestID)
	if !ok {
		return
	}

	img, _, err := imageio.Decode(body)
	if err != nil {
		s.writeErrorResponse(w, http.StatusUnprocessableEntity, api.INVALIDIMAGE, err.Error(), &requestID, nil)
		return
	}

	res, err := pipeline.ApplyContext(r.Context(), img, specs)
	if err != nil {
		s.handleChainError(w, err, &requestID)
		return
	}

	var out bytes.Buffer
	if err := imageio.Encode(&out, res.Image, format); err != nil {
		slog.Error("Error encoding processed image", "request_id", requestID, "error", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, api.INTERNALERROR,
			"Internal server error", &requestID, nil)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("X-Filters-Applied", strconv.Itoa(res.Applied))
	w.Header().Set("Content-Length", strconv.Itoa(out.Len()))

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Bytes()); err != nil {
		slog.Warn("Error writing response", "request_id", requestID, "error", err)
	}
}

// ValidateImage checks the headers of the uploaded bitmap.
func (s *Server) ValidateImage(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	body, ok := s.readBody(w, r, requestID)
	if !ok {
		return
	}

	info, err := bitmap.Validate(bytes.NewReader(body))
	if err != nil {
		details := map[string]interface{}{"reason": validationReason(err)}
		s.writeErrorResponse(w, http.StatusUnprocessableEntity, api.INVALIDIMAGE, err.Error(), &requestID, details)
		return
	}

	w.Header().Set("X-Request-ID", requestID)
	s.writeJSON(w, http.StatusOK, api.ValidationResponse{
		Valid:       true,
		Width:       int(info.Width),
		Height:      info.AbsHeight(),
		BitCount:    int(info.BitCount),
		Compression: int(info.Compression),
		FileSize:    int64(info.FileSize),
		DataOffset:  int64(info.DataOffset),
		Orientation: info.Orientation(),
	})
}

// handleParamError reports query parameters that could not be bound.
func (s *Server) handleParamError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := generateRequestID()
	s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDREQUEST, err.Error(), &requestID, nil)
}

// readBody reads the request body up to the configured limit, writing the
// error response itself when that fails.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request, requestID string) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err == nil {
		return body, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, api.PAYLOADTOOLARGE,
			"Request body too large", &requestID, map[string]interface{}{
				"limit_bytes": tooLarge.Limit,
			})
		return nil, false
	}

	s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDREQUEST,
		"Could not read request body", &requestID, nil)
	return nil, false
}

// handleChainError handles errors from the filter chain
func (s *Server) handleChainError(w http.ResponseWriter, err error, requestID *string) {
	// Same status the Timeout middleware sends once the deadline passes
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.writeErrorResponse(w, http.StatusGatewayTimeout, api.REQUESTTIMEOUT,
			"Filter chain did not finish in time", requestID, nil)
		return
	}

	var chainErr *pipeline.ChainError
	if errors.As(err, &chainErr) {
		s.writeErrorResponse(w, http.StatusUnprocessableEntity, api.FILTERFAILED,
			chainErr.Error(), requestID, map[string]interface{}{
				"step":   chainErr.Step,
				"filter": string(chainErr.Kind),
			})
		return
	}

	slog.Error("Unexpected filter chain error", "request_id", *requestID, "error", err)
	s.writeErrorResponse(w, http.StatusInternalServerError, api.INTERNALERROR,
		"Internal server error", requestID, nil)
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string, details map[string]interface{}) {
	response := api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	if details != nil {
		response.Details = &details
	}

	if requestID != nil {
		w.Header().Set("X-Request-ID", *requestID)
	}
	s.writeJSON(w, statusCode, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Error encoding response", "error", err)
	}
}

// validationReason names the category of a Validate failure.
func validationReason(err error) string {
	switch {
	case errors.Is(err, bitmap.ErrBadSignature):
		return "signature"
	case errors.Is(err, bitmap.ErrBadHeaderSize):
		return "header_size"
	case errors.Is(err, bitmap.ErrBadBitDepth):
		return "bit_depth"
	default:
		return "unreadable"
	}
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return "req_" + uuid.NewString()
}
