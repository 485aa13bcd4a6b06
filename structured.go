package glinfo

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const structuredIndent = "  "

// encode writes v once in a structured format.
func encode[T any](w io.Writer, f Format, v T) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", structuredIndent)
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(len(structuredIndent))
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
