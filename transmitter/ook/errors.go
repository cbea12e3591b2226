package ook

import (
	"errors"
	"fmt"
)

// ErrorKind identifies why a pulse train was rejected before any
// hardware was touched.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	InvalidPulseCount
	PulseTrainOutOfOrder
	InvalidPulseLength
	InvalidTxTime
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidPulseCount:
		return "invalid pulse count"
	case PulseTrainOutOfOrder:
		return "pulse train out of order"
	case InvalidPulseLength:
		return "invalid pulse length"
	case InvalidTxTime:
		return "invalid total tx time"
	default:
		return "unknown"
	}
}

// Code returns the legacy wire code the HTTP front end reports for
// this kind: -2 count, -3 odd train, -4 length, -5 total time,
// -1 anything else.
func (k ErrorKind) Code() int {
	switch k {
	case InvalidPulseCount:
		return -2
	case PulseTrainOutOfOrder:
		return -3
	case InvalidPulseLength:
		return -4
	case InvalidTxTime:
		return -5
	default:
		return -1
	}
}

// PolicyError reports a pulse train that falls outside the
// transmission envelope. The caller can correct the train and
// resubmit; no hardware state has changed.
type PolicyError struct {
	Kind  ErrorKind
	Index int // offending pulse index, -1 when not pulse-specific
}

func (e *PolicyError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s at pulse %d", e.Kind, e.Index)
	}
	return e.Kind.String()
}

// ArgumentError reports a caller-contract violation on the transmit
// parameters themselves. It is a hard failure of the call, distinct
// from the policy codes.
type ArgumentError struct {
	Field string
	Value int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}

// CodeOf extracts the legacy wire code from an error. Anything that is
// not a policy rejection maps to -1.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	var policyErr *PolicyError
	if errors.As(err, &policyErr) {
		return policyErr.Kind.Code()
	}
	return Unknown.Code()
}
