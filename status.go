package glinfo

import (
	"errors"
	"fmt"
)

// Status is the outcome code of a driver attribute query.
type Status int

const (
	StatusSuccess Status = iota
	StatusBadArgument
	StatusBadHandle
	StatusNotApplicable
	StatusMissingExtension
	StatusReadOnly
	StatusWriteOnly
	StatusNotAvailable
	StatusNotSupported
	StatusUnknown
)

var statusText = map[Status]string{
	StatusSuccess:          "Success",
	StatusBadArgument:      "Bad argument",
	StatusBadHandle:        "Bad handle",
	StatusNotApplicable:    "No such attribute",
	StatusMissingExtension: "Missing Extension",
	StatusReadOnly:         "Read only attribute",
	StatusWriteOnly:        "Write only attribute",
	StatusNotAvailable:     "Attribute not available",
	StatusNotSupported:     "Operation not supported",
	StatusUnknown:          "Unknown Error",
}

var statusNames = map[string]Status{
	"success":           StatusSuccess,
	"bad-argument":      StatusBadArgument,
	"bad-handle":        StatusBadHandle,
	"not-applicable":    StatusNotApplicable,
	"missing-extension": StatusMissingExtension,
	"read-only":         StatusReadOnly,
	"write-only":        StatusWriteOnly,
	"not-available":     StatusNotAvailable,
	"not-supported":     StatusNotSupported,
	"error":             StatusUnknown,
}

// String returns the driver's description of the status.
func (s Status) String() string {
	if t, ok := statusText[s]; ok {
		return t
	}
	return "Unrecognized Error"
}

// ParseStatus maps a kebab-case status name such as "not-supported" to its
// Status.
func ParseStatus(name string) (Status, error) {
	if s, ok := statusNames[name]; ok {
		return s, nil
	}
	return StatusUnknown, fmt.Errorf("unknown status %q", name)
}

// StatusError is a failed query carrying the driver status.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string { return e.Status.String() }

// Is matches [ErrNotApplicable] for StatusNotApplicable.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotApplicable && e.Status == StatusNotApplicable
}

// errorText returns the text shown in a fetch diagnostic.
func errorText(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status.String()
	}
	return err.Error()
}
