package glinfo

import "fmt"

// --- Collaborator interfaces ---

// Connector resolves a display name into a connected System.
type Connector interface {
	Connect(displayName string) (System, error)
}

// System is a connection to the display/driver subsystem.
type System interface {
	// DriverControl reports whether the system exposes native driver control
	// for its X screens.
	DriverControl() bool
	// Targets returns the targets of class in enumeration order.
	Targets(class TargetClass) []Target
	// Close releases the system and every target it enumerated.
	Close() error
}

// Target is one display screen or GPU.
//
// Query methods return an error matching [ErrNotApplicable] when the target
// does not support the attribute. Configuration queries may return a nil
// slice with a nil error when the attribute is absent.
type Target interface {
	Name() string
	// Valid reports whether the target has an underlying resource handle.
	Valid() bool
	QueryString(attr StringAttribute) (string, error)
	QueryFBConfigs() ([]FBConfig, error)
	QueryEGLConfigs() ([]EGLConfig, error)
}

// Releaser is implemented by targets that own driver-side buffers for the
// values they returned. Reports call Release once after they finish with a
// target, including when the report aborts.
type Releaser interface {
	Release() error
}

// --- Value types ---

// TargetClass selects which kind of targets a System enumerates.
type TargetClass int

const (
	ScreenTarget TargetClass = iota
	GPUTarget
)

// String returns the class name.
func (c TargetClass) String() string {
	switch c {
	case ScreenTarget:
		return "screen"
	case GPUTarget:
		return "gpu"
	default:
		return fmt.Sprintf("TargetClass(%d)", int(c))
	}
}

// StringAttribute identifies a string-valued driver attribute.
type StringAttribute int

const (
	GLXDirectRendering StringAttribute = iota
	GLXExtensions
	GLXServerVendor
	GLXServerVersion
	GLXServerExtensions
	GLXClientVendor
	GLXClientVersion
	GLXClientExtensions
	OpenGLVendor
	OpenGLRenderer
	OpenGLVersion
	OpenGLExtensions
	EGLVendor
	EGLVersion
	EGLExtensions
)

var stringAttributeNames = []string{
	GLXDirectRendering:  "glx_direct_rendering",
	GLXExtensions:       "glx_extensions",
	GLXServerVendor:     "glx_server_vendor",
	GLXServerVersion:    "glx_server_version",
	GLXServerExtensions: "glx_server_extensions",
	GLXClientVendor:     "glx_client_vendor",
	GLXClientVersion:    "glx_client_version",
	GLXClientExtensions: "glx_client_extensions",
	OpenGLVendor:        "opengl_vendor",
	OpenGLRenderer:      "opengl_renderer",
	OpenGLVersion:       "opengl_version",
	OpenGLExtensions:    "opengl_extensions",
	EGLVendor:           "egl_vendor",
	EGLVersion:          "egl_version",
	EGLExtensions:       "egl_extensions",
}

// Names of the configuration-table attributes, for back ends that key
// attributes by name.
const (
	FBConfigsAttribute  = "glx_fbconfig_attribs"
	EGLConfigsAttribute = "egl_config_attribs"
)

// String returns the snake_case attribute name.
func (a StringAttribute) String() string {
	if a >= 0 && int(a) < len(stringAttributeNames) {
		return stringAttributeNames[a]
	}
	return fmt.Sprintf("StringAttribute(%d)", int(a))
}

// ParseStringAttribute maps a snake_case name to its StringAttribute.
func ParseStringAttribute(name string) (StringAttribute, error) {
	for i, n := range stringAttributeNames {
		if n == name {
			return StringAttribute(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// StringAttributes returns every known string attribute.
func StringAttributes() []StringAttribute {
	out := make([]StringAttribute, len(stringAttributeNames))
	for i := range out {
		out[i] = StringAttribute(i)
	}
	return out
}
