// Package snapshot serves driver capability attributes from a file.
//
// A snapshot describes one system: its display name, whether it exposes
// native driver control, and its screens and GPUs. Each target lists its
// string attributes by name (see [glinfo.StringAttribute]), its configuration
// tables, and optionally an "errors" map from attribute name to a status name
// such as "error" or "bad-handle" to reproduce driver failures. Attributes
// that are not listed query as not applicable.
//
//	display: ":0"
//	driver_control: true
//	screens:
//	  - name: "Screen 0 (:0.0)"
//	    strings:
//	      egl_vendor: NVIDIA
//	    egl_configs:
//	      - config_id: 0x1
//	        buffer_size: 32
//
// YAML, JSON and TOML files are accepted.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/glinfo"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedKind = errors.New("unsupported snapshot kind")
	ErrDisplayMismatch = errors.New("display does not match snapshot")
	ErrClosed          = errors.New("system closed")
	ErrReleased        = errors.New("target released")
)

// Kind is a snapshot file encoding.
type Kind string

const (
	YAML Kind = "yaml"
	JSON Kind = "json"
	TOML Kind = "toml"
)

// KindOf returns the Kind implied by a file name's extension.
func KindOf(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, path)
	}
}

// File is a parsed snapshot. It implements [glinfo.Connector].
type File struct {
	Display       string   `yaml:"display" toml:"display"`
	DriverControl bool     `yaml:"driver_control" toml:"driver_control"`
	Screens       []Target `yaml:"screens" toml:"screens"`
	GPUs          []Target `yaml:"gpus" toml:"gpus"`
}

// Target is one screen or GPU in a snapshot.
type Target struct {
	Name       string             `yaml:"name" toml:"name"`
	NoHandle   bool               `yaml:"no_handle" toml:"no_handle"`
	Strings    map[string]string  `yaml:"strings" toml:"strings"`
	FBConfigs  []glinfo.FBConfig  `yaml:"fbconfigs" toml:"fbconfigs"`
	EGLConfigs []glinfo.EGLConfig `yaml:"egl_configs" toml:"egl_configs"`
	Errors     map[string]string  `yaml:"errors" toml:"errors"`
}

// Load reads and parses the snapshot at path.
func Load(path string) (*File, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a snapshot and validates its attribute names and statuses.
// Unknown fields are rejected.
func Parse(data []byte, kind Kind) (*File, error) {
	var f File
	switch kind {
	case YAML, JSON:
		// JSON is decoded as the YAML subset it is.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	for i, t := range f.Screens {
		if err := t.validate(); err != nil {
			return fmt.Errorf("%s %d: %w", glinfo.ScreenTarget, i, err)
		}
	}
	for i, t := range f.GPUs {
		if err := t.validate(); err != nil {
			return fmt.Errorf("%s %d: %w", glinfo.GPUTarget, i, err)
		}
	}
	return nil
}

func (t *Target) validate() error {
	for name := range t.Strings {
		if _, err := glinfo.ParseStringAttribute(name); err != nil {
			return err
		}
	}
	for name, status := range t.Errors {
		if name != glinfo.FBConfigsAttribute && name != glinfo.EGLConfigsAttribute {
			if _, err := glinfo.ParseStringAttribute(name); err != nil {
				return err
			}
		}
		if _, err := glinfo.ParseStatus(status); err != nil {
			return fmt.Errorf("attribute %s: %w", name, err)
		}
	}
	return nil
}

// Connect returns a system serving the snapshot. An empty display name, or a
// snapshot without one, matches any display.
func (f *File) Connect(displayName string) (glinfo.System, error) {
	if displayName != "" && f.Display != "" && displayName != f.Display {
		return nil, fmt.Errorf("%w: %q (snapshot is %q)", ErrDisplayMismatch, displayName, f.Display)
	}
	s := &system{driverControl: f.DriverControl}
	s.screens = s.wrap(f.Screens)
	s.gpus = s.wrap(f.GPUs)
	return s, nil
}
