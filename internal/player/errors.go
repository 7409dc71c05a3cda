package player

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
)

// ErrorKind classifies playback failures.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrResource
	ErrFormat
	ErrNetwork
	ErrAccessDenied
)

// String returns a short reason for logs.
func (k ErrorKind) String() string {
	switch k {
	case ErrResource:
		return "resource"
	case ErrFormat:
		return "format"
	case ErrNetwork:
		return "network"
	case ErrAccessDenied:
		return "permission"
	default:
		return "unknown"
	}
}

// Description returns a human-readable explanation of the kind.
func (k ErrorKind) Description() string {
	switch k {
	case ErrResource:
		return "cannot open file or media resource"
	case ErrFormat:
		return "unsupported media format"
	case ErrNetwork:
		return "network connection problem"
	case ErrAccessDenied:
		return "no permission to access media"
	default:
		return "unknown error"
	}
}

var (
	// ErrUnsupportedFormat is returned when a backend cannot decode a file.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNoSource is returned by Play when no media has been loaded.
	ErrNoSource = errors.New("no media source")
)

// Error is a classified backend failure.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error on %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with its classification.
func NewError(path string, err error) *Error {
	return &Error{Kind: Classify(err), Path: path, Err: err}
}

// Classify maps an error to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrUnknown
	}

	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}

	switch {
	case errors.Is(err, fs.ErrPermission):
		return ErrAccessDenied
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrNoSource):
		return ErrResource
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrFormat
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return ErrNetwork
	}
	return ErrUnknown
}
