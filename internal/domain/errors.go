package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrInvalidResponse    = errors.New("invalid response")
	ErrNoSample           = errors.New("no sample")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindInvalidConfig      ErrorKind = "invalid_config"
	KindDatasetUnavailable ErrorKind = "dataset_unavailable"
	KindIndexOutOfRange    ErrorKind = "index_out_of_range"
	KindNetwork            ErrorKind = "network"
	KindInvalidResponse    ErrorKind = "invalid_response"
	KindExecution          ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or URL
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// NetErrorKind is a high-level classification of endpoint failures.
type NetErrorKind string

const (
	NetErrorUnknown NetErrorKind = "unknown"
	NetErrorTimeout NetErrorKind = "timeout"
	NetErrorDNS     NetErrorKind = "dns"
	NetErrorConn    NetErrorKind = "connection"
	NetErrorHTTP    NetErrorKind = "http"
)

// NetError describes why a call to the endpoint did not produce a usable response.
// Status is set only for NetErrorHTTP.
type NetError struct {
	Kind    NetErrorKind
	Status  int
	Message string
}

func (e *NetError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Kind == NetErrorHTTP {
		return fmt.Sprintf("%s: status %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
