package glinfo

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNotApplicable     = errors.New("attribute not applicable")
	ErrConnect           = errors.New("unable to connect to system")
	ErrUnknownAttribute  = errors.New("unknown attribute")
)

// Format represents a report output format.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

var formats = []Format{Text, JSON, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string. The empty string selects [Text].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Text, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// structured reports whether f is encoded once per report instead of
// streamed per target.
func (f Format) structured() bool {
	return f == JSON || f == YAML
}
