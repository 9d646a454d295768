package inventory

import (
	"errors"
	"fmt"
)

// ErrNotConfirmed is returned by Delete when the caller did not confirm the removal.
// No request is sent to the remote resource in that case.
var ErrNotConfirmed = errors.New("deletion not confirmed")

// ErrMissingID and ErrIDMismatch mark a 2xx response whose record cannot be mirrored
var (
	ErrMissingID  = errors.New("record has no identifier")
	ErrIDMismatch = errors.New("record identifier changed")
)

// FailureKind classifies why a remote operation failed
type FailureKind int

const (
	// KindTransport covers connection errors, timeouts and cancelled contexts
	KindTransport FailureKind = iota
	// KindStatus means the resource answered with a non-2xx status
	KindStatus
	// KindDecode means the response body could not be parsed
	KindDecode
	// KindEncode means the request body could not be built
	KindEncode
)

func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// OpError describes a failed call against the remote collection resource
type OpError struct {
	Op         string // list, create, update, delete
	Kind       FailureKind
	StatusCode int // set for KindStatus
	Err        error
}

func (e *OpError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s product: unexpected status code: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s product: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *OpError of the given kind
func IsKind(err error, kind FailureKind) bool {
	var opErr *OpError
	return errors.As(err, &opErr) && opErr.Kind == kind
}
