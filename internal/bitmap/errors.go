package bitmap

import (
	"errors"
	"fmt"
)

// Categories reported by Decode and Validate. Match them with errors.Is.
var (
	ErrUnreadable     = errors.New("unreadable bitmap")
	ErrBadSignature   = errors.New("invalid signature: not a bitmap")
	ErrBadHeaderSize  = errors.New("unsupported info header size")
	ErrBadBitDepth    = errors.New("unsupported bit depth: only 24-bit is supported")
	ErrBadCompression = errors.New("unsupported compression: only uncompressed is supported")
	ErrBadDimensions  = errors.New("invalid dimensions")
	ErrShortRead      = errors.New("unexpected end of pixel data")
	ErrAllocation     = errors.New("cannot allocate pixel buffer")
)

// FormatError reports a bitmap that does not match the supported layout.
type FormatError struct {
	Reason error
	Detail string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Detail
}

func (e *FormatError) Unwrap() error {
	return e.Reason
}

func formatErr(reason error, format string, args ...any) *FormatError {
	return &FormatError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// EncodeError reports a failure while writing a bitmap.
type EncodeError struct {
	Stage string
	Err   error
}

func (e *EncodeError) Error() string {
	return "encode bitmap: " + e.Stage + ": " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// FileAccessError reports a file that cannot be opened, read or written.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
