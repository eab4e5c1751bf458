package parse

import (
	"errors"
	"fmt"
)

// Reason classifies why a datagram was rejected. Every rejection is
// non-fatal: the pipeline counts it and moves on.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonTooShort means the datagram cannot even hold the fixed header.
	ReasonTooShort
	// ReasonSizeMismatch means the datagram is shorter than the size the
	// registry declares for its (format, id) pair. Oversized datagrams are
	// accepted and the trailing bytes ignored.
	ReasonSizeMismatch
	// ReasonUnsupportedVersion means the header names a format year the
	// registry does not carry tables for.
	ReasonUnsupportedVersion
	// ReasonUnsupportedType means the packet id is unknown within its
	// format year.
	ReasonUnsupportedType
	// ReasonFieldOutOfRange means a decoded field violates a protocol bound,
	// e.g. a car index at or beyond the grid size.
	ReasonFieldOutOfRange
)

func (r Reason) String() string {
	switch r {
	case ReasonTooShort:
		return "too_short"
	case ReasonSizeMismatch:
		return "size_mismatch"
	case ReasonUnsupportedVersion:
		return "unsupported_version"
	case ReasonUnsupportedType:
		return "unsupported_type"
	case ReasonFieldOutOfRange:
		return "field_out_of_range"
	default:
		return "none"
	}
}

// DecodeError is the typed failure returned for every rejected datagram.
type DecodeError struct {
	Reason Reason
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode: %s: %s", e.Reason, e.Detail)
}

func decodeErrf(reason Reason, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the rejection reason from err, or ReasonNone if err is
// not a DecodeError.
func ReasonOf(err error) Reason {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ReasonNone
}
