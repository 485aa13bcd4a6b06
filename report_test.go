package glinfo_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bjaus/glinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// --- Fake collaborators ---

type fakeTarget struct {
	name       string
	invalid    bool
	strs       map[glinfo.StringAttribute]string
	errs       map[string]error
	fbConfigs  []glinfo.FBConfig
	eglConfigs []glinfo.EGLConfig
	releases   int
}

func (t *fakeTarget) Name() string { return t.name }
func (t *fakeTarget) Valid() bool  { return !t.invalid }

func (t *fakeTarget) QueryString(attr glinfo.StringAttribute) (string, error) {
	if err, ok := t.errs[attr.String()]; ok {
		return "", err
	}
	v, ok := t.strs[attr]
	if !ok {
		return "", glinfo.ErrNotApplicable
	}
	return v, nil
}

func (t *fakeTarget) QueryFBConfigs() ([]glinfo.FBConfig, error) {
	if err, ok := t.errs[glinfo.FBConfigsAttribute]; ok {
		return nil, err
	}
	return t.fbConfigs, nil
}

func (t *fakeTarget) QueryEGLConfigs() ([]glinfo.EGLConfig, error) {
	if err, ok := t.errs[glinfo.EGLConfigsAttribute]; ok {
		return nil, err
	}
	return t.eglConfigs, nil
}

func (t *fakeTarget) Release() error {
	t.releases++
	return nil
}

type fakeSystem struct {
	control bool
	screens []*fakeTarget
	gpus    []*fakeTarget
	closes  int
}

func (s *fakeSystem) DriverControl() bool { return s.control }

func (s *fakeSystem) Targets(class glinfo.TargetClass) []glinfo.Target {
	src := s.screens
	if class == glinfo.GPUTarget {
		src = s.gpus
	}
	out := make([]glinfo.Target, len(src))
	for i, t := range src {
		out[i] = t
	}
	return out
}

func (s *fakeSystem) Close() error {
	s.closes++
	return nil
}

type fakeConn struct {
	sys     *fakeSystem
	err     error
	display string
}

func (c *fakeConn) Connect(displayName string) (glinfo.System, error) {
	c.display = displayName
	if c.err != nil {
		return nil, c.err
	}
	if c.sys == nil {
		return nil, nil
	}
	return c.sys, nil
}

func newReporter(opts ...glinfo.Option) (*glinfo.Reporter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return glinfo.NewReporter(&stdout, &stderr, opts...), &stdout, &stderr
}

// --- GLX ---

const emptyGLXReport = `GLX Information for Screen 0:
  direct rendering: 
  GLX extensions:
    
 
  server glx vendor string: 
  server glx version string: 
  server glx extensions:
    
 
  client glx vendor string: 
  client glx version string: 
  client glx extensions:
    
 
  OpenGL vendor string: 
  OpenGL renderer string: 
  OpenGL version string: 
  OpenGL extensions:
    
`

func TestGLXAllNotApplicable(t *testing.T) {
	t.Parallel()
	screen := &fakeTarget{name: "Screen 0"}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	r, stdout, stderr := newReporter()

	require.NoError(t, r.GLX(&fakeConn{sys: sys}, ":0"))
	assert.Equal(t, emptyGLXReport, stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, 1, screen.releases)
	assert.Equal(t, 1, sys.closes)
}

func TestGLXStatusNotApplicable(t *testing.T) {
	t.Parallel()
	na := &glinfo.StatusError{Status: glinfo.StatusNotApplicable}
	screen := &fakeTarget{name: "Screen 0", errs: map[string]error{
		glinfo.GLXServerVendor.String(): na,
		glinfo.FBConfigsAttribute:       na,
	}}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	r, stdout, stderr := newReporter()

	require.NoError(t, r.GLX(&fakeConn{sys: sys}, ":0"))
	assert.Equal(t, emptyGLXReport, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestGLXFullReport(t *testing.T) {
	t.Parallel()
	screen := &fakeTarget{
		name: "Screen 0",
		strs: map[glinfo.StringAttribute]string{
			glinfo.GLXDirectRendering: "Yes",
			glinfo.GLXExtensions:      "GLX_A GLX_B ",
			glinfo.GLXServerVendor:    "NVIDIA Corporation",
			glinfo.OpenGLRenderer:     "NVIDIA GeForce",
			glinfo.OpenGLExtensions:   "GL_A GL_B\nGL_IGNORED",
		},
		fbConfigs: []glinfo.FBConfig{fbTrueColor, {}},
	}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	r, stdout, _ := newReporter()

	require.NoError(t, r.GLX(&fakeConn{sys: sys}, ":0"))
	out := stdout.String()
	assert.Contains(t, out, "  direct rendering: Yes\n")
	assert.Contains(t, out, "  GLX extensions:\n    GLX_A, GLX_B\n \n")
	assert.Contains(t, out, "  server glx vendor string: NVIDIA Corporation\n")
	assert.Contains(t, out, "  OpenGL renderer string: NVIDIA GeForce\n")
	assert.NotContains(t, out, "GL_IGNORED")
	assert.True(t, strings.HasSuffix(out, "  OpenGL extensions:\n    GL_A, GL_B\n \n"+fbHeader+fbTrueColorRow), out)
}

func TestGLXVisitsScreensInOrder(t *testing.T) {
	t.Parallel()
	first := &fakeTarget{name: "Screen 0"}
	skipped := &fakeTarget{name: "Screen 1", invalid: true}
	last := &fakeTarget{name: "Screen 2"}
	sys := &fakeSystem{screens: []*fakeTarget{first, skipped, last}, gpus: []*fakeTarget{{name: "GPU 0"}}}
	r, stdout, _ := newReporter()

	require.NoError(t, r.GLX(&fakeConn{sys: sys}, ""))
	out := stdout.String()
	assert.NotContains(t, out, "Screen 1")
	assert.NotContains(t, out, "GPU 0")
	i0 := strings.Index(out, "GLX Information for Screen 0:")
	i2 := strings.Index(out, "GLX Information for Screen 2:")
	require.GreaterOrEqual(t, i0, 0)
	assert.Greater(t, i2, i0)
	assert.Equal(t, 1, first.releases)
	assert.Equal(t, 0, skipped.releases)
	assert.Equal(t, 1, last.releases)
}

func TestGLXFetchErrorAborts(t *testing.T) {
	t.Parallel()
	ok := &fakeTarget{name: "Screen 0"}
	failing := &fakeTarget{
		name: "Screen 1",
		strs: map[glinfo.StringAttribute]string{glinfo.GLXServerVendor: "NVIDIA"},
		errs: map[string]error{
			glinfo.FBConfigsAttribute: &glinfo.StatusError{Status: glinfo.StatusUnknown},
		},
	}
	never := &fakeTarget{name: "Screen 2"}
	sys := &fakeSystem{screens: []*fakeTarget{ok, failing, never}}
	r, stdout, stderr := newReporter()

	err := r.GLX(&fakeConn{sys: sys}, ":0")
	var fe *glinfo.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "GLX", fe.Report)

	var se *glinfo.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, glinfo.StatusUnknown, se.Status)

	assert.Equal(t, "ERROR: Error fetching GLX Information: Unknown Error\n", stderr.String())
	assert.Contains(t, stdout.String(), "GLX Information for Screen 0:")
	assert.NotContains(t, stdout.String(), "Screen 1")
	assert.NotContains(t, stdout.String(), "Screen 2")
	assert.Equal(t, 1, ok.releases)
	assert.Equal(t, 1, failing.releases)
	assert.Equal(t, 0, never.releases)
	assert.Equal(t, 1, sys.closes)
}

func TestGLXStringFetchErrorAborts(t *testing.T) {
	t.Parallel()
	screen := &fakeTarget{name: "Screen 0", errs: map[string]error{
		glinfo.GLXClientVersion.String(): &glinfo.StatusError{Status: glinfo.StatusBadHandle},
	}}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	r, stdout, stderr := newReporter()

	err := r.GLX(&fakeConn{sys: sys}, ":0")
	require.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "ERROR: Error fetching GLX Information: Bad handle\n", stderr.String())
	assert.Equal(t, 1, screen.releases)
	assert.Equal(t, 1, sys.closes)
}

func TestGLXConnectFailure(t *testing.T) {
	t.Parallel()
	errNoDisplay := errors.New("no display")
	r, stdout, stderr := newReporter()

	err := r.GLX(&fakeConn{err: errNoDisplay}, ":9")
	assert.ErrorIs(t, err, glinfo.ErrConnect)
	assert.ErrorIs(t, err, errNoDisplay)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestGLXConnectNilSystem(t *testing.T) {
	t.Parallel()
	r, _, _ := newReporter()
	err := r.GLX(&fakeConn{}, ":0")
	assert.ErrorIs(t, err, glinfo.ErrConnect)
}

func TestGLXPassesDisplayName(t *testing.T) {
	t.Parallel()
	conn := &fakeConn{sys: &fakeSystem{}}
	r, stdout, _ := newReporter()
	require.NoError(t, r.GLX(conn, "host:1"))
	assert.Equal(t, "host:1", conn.display)
	assert.Empty(t, stdout.String())
}

func TestGLXWriteError(t *testing.T) {
	t.Parallel()
	screen := &fakeTarget{name: "Screen 0"}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	var stderr bytes.Buffer
	r := glinfo.NewReporter(errWriter{}, &stderr)

	err := r.GLX(&fakeConn{sys: sys}, ":0")
	assert.ErrorIs(t, err, errWrite)
	var fe *glinfo.FetchError
	assert.False(t, errors.As(err, &fe))
	assert.Empty(t, stderr.String())
	assert.Equal(t, 1, screen.releases)
	assert.Equal(t, 1, sys.closes)
}

func TestGLXErrorStyle(t *testing.T) {
	t.Parallel()
	screen := &fakeTarget{name: "Screen 0", errs: map[string]error{
		glinfo.GLXDirectRendering.String(): &glinfo.StatusError{Status: glinfo.StatusUnknown},
	}}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	r, _, stderr := newReporter(glinfo.WithErrorStyle(func(s string) string { return "<" + s + ">" }))

	require.Error(t, r.GLX(&fakeConn{sys: sys}, ":0"))
	assert.Equal(t, "<ERROR: Error fetching GLX Information: Unknown Error>\n", stderr.String())
}

func TestGLXJSON(t *testing.T) {
	t.Parallel()
	screen := &fakeTarget{
		name: "Screen 0",
		strs: map[glinfo.StringAttribute]string{
			glinfo.OpenGLVendor:     "NVIDIA Corporation",
			glinfo.OpenGLExtensions: "GL_A GL_B",
		},
		fbConfigs: []glinfo.FBConfig{fbTrueColor, {}, fbMultisample},
	}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	r, stdout, _ := newReporter(glinfo.WithFormat(glinfo.JSON))

	require.NoError(t, r.GLX(&fakeConn{sys: sys}, ":0"))
	var got []glinfo.GLXInfo
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Screen 0", got[0].Target)
	assert.Equal(t, "NVIDIA Corporation", got[0].OpenGLVendor)
	assert.Equal(t, "GL_A, GL_B", got[0].OpenGLExtensions)
	assert.Equal(t, []glinfo.FBConfig{fbTrueColor}, got[0].FBConfigs)
}

func TestGLXJSONNoTargets(t *testing.T) {
	t.Parallel()
	r, stdout, _ := newReporter(glinfo.WithFormat(glinfo.JSON))
	require.NoError(t, r.GLX(&fakeConn{sys: &fakeSystem{}}, ":0"))
	assert.Equal(t, "[]\n", stdout.String())
}

func TestGLXJSONFetchErrorWritesNothing(t *testing.T) {
	t.Parallel()
	screen := &fakeTarget{name: "Screen 0", errs: map[string]error{
		glinfo.OpenGLVersion.String(): &glinfo.StatusError{Status: glinfo.StatusUnknown},
	}}
	sys := &fakeSystem{screens: []*fakeTarget{screen}}
	r, stdout, stderr := newReporter(glinfo.WithFormat(glinfo.JSON))

	require.Error(t, r.GLX(&fakeConn{sys: sys}, ":0"))
	assert.Empty(t, stdout.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"))
}

// --- EGL ---

func TestEGLReport(t *testing.T) {
	t.Parallel()
	gpu := &fakeTarget{
		name: "GPU 0",
		strs: map[glinfo.StringAttribute]string{
			glinfo.EGLVendor:     "NVIDIA",
			glinfo.EGLVersion:    "1.5",
			glinfo.EGLExtensions: "EGL_A EGL_B",
		},
		eglConfigs: []glinfo.EGLConfig{eglRGB, {}},
	}
	sys := &fakeSystem{gpus: []*fakeTarget{gpu}}
	r, stdout, _ := newReporter()

	require.NoError(t, r.EGL(&fakeConn{sys: sys}, ":0"))
	want := "EGL Information for GPU 0:\n" +
		"  EGL vendor string: NVIDIA\n" +
		"  EGL version string: 1.5\n" +
		"  EGL extensions:\n" +
		"    EGL_A, EGL_B\n" +
		" \n" +
		" \n" +
		eglHeader + eglRGBRow
	assert.Equal(t, want, stdout.String())
}

func TestEGLWithoutConfigs(t *testing.T) {
	t.Parallel()
	gpu := &fakeTarget{name: "GPU 0"}
	sys := &fakeSystem{gpus: []*fakeTarget{gpu}}
	r, stdout, _ := newReporter()

	require.NoError(t, r.EGL(&fakeConn{sys: sys}, ":0"))
	want := "EGL Information for GPU 0:\n" +
		"  EGL vendor string: \n" +
		"  EGL version string: \n" +
		"  EGL extensions:\n" +
		"    \n" +
		" \n"
	assert.Equal(t, want, stdout.String())
}

func TestEGLFirstGPUOnly(t *testing.T) {
	t.Parallel()
	invalid := &fakeTarget{name: "GPU 0", invalid: true}
	first := &fakeTarget{name: "GPU 1"}
	second := &fakeTarget{name: "GPU 2"}
	sys := &fakeSystem{
		screens: []*fakeTarget{{name: "Screen 0"}},
		gpus:    []*fakeTarget{invalid, first, second},
	}
	r, stdout, _ := newReporter()

	require.NoError(t, r.EGL(&fakeConn{sys: sys}, ":0"))
	out := stdout.String()
	assert.Contains(t, out, "EGL Information for GPU 1:")
	assert.NotContains(t, out, "GPU 0")
	assert.NotContains(t, out, "GPU 2")
	assert.NotContains(t, out, "Screen 0")
	assert.Equal(t, 1, first.releases)
	assert.Equal(t, 0, second.releases)
	assert.Equal(t, 1, sys.closes)
}

func TestEGLScreensWithDriverControl(t *testing.T) {
	t.Parallel()
	s0 := &fakeTarget{name: "Screen 0"}
	s1 := &fakeTarget{name: "Screen 1"}
	sys := &fakeSystem{
		control: true,
		screens: []*fakeTarget{s0, s1},
		gpus:    []*fakeTarget{{name: "GPU 0"}},
	}
	r, stdout, _ := newReporter()

	require.NoError(t, r.EGL(&fakeConn{sys: sys}, ":0"))
	out := stdout.String()
	assert.Contains(t, out, "EGL Information for Screen 0:")
	assert.Contains(t, out, "EGL Information for Screen 1:")
	assert.NotContains(t, out, "GPU 0")
	assert.Equal(t, 1, s0.releases)
	assert.Equal(t, 1, s1.releases)
}

func TestEGLConfigFetchError(t *testing.T) {
	t.Parallel()
	gpu := &fakeTarget{
		name: "GPU 0",
		strs: map[glinfo.StringAttribute]string{glinfo.EGLVendor: "NVIDIA"},
		errs: map[string]error{glinfo.EGLConfigsAttribute: errors.New("driver went away")},
	}
	sys := &fakeSystem{gpus: []*fakeTarget{gpu}}
	r, stdout, stderr := newReporter()

	err := r.EGL(&fakeConn{sys: sys}, ":0")
	var fe *glinfo.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "EGL", fe.Report)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "ERROR: Error fetching EGL Information: egl_config_attribs: driver went away\n", stderr.String())
	assert.Equal(t, 1, gpu.releases)
	assert.Equal(t, 1, sys.closes)
}

func TestEGLYAML(t *testing.T) {
	t.Parallel()
	gpu := &fakeTarget{
		name:       "GPU 0",
		strs:       map[glinfo.StringAttribute]string{glinfo.EGLVendor: "NVIDIA"},
		eglConfigs: []glinfo.EGLConfig{eglRGB},
	}
	sys := &fakeSystem{gpus: []*fakeTarget{gpu}}
	r, stdout, _ := newReporter(glinfo.WithFormat(glinfo.YAML))

	require.NoError(t, r.EGL(&fakeConn{sys: sys}, ":0"))
	var got []glinfo.EGLInfo
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "GPU 0", got[0].Target)
	assert.Equal(t, "NVIDIA", got[0].Vendor)
	assert.Equal(t, []glinfo.EGLConfig{eglRGB}, got[0].Configs)
}
