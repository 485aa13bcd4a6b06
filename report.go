package glinfo

import (
	"errors"
	"fmt"
	"io"
)

const (
	tab       = "  "
	extIndent = "    "
)

// Option configures a Reporter.
type Option func(*config)

type config struct {
	format     Format
	width      int
	errorStyle func(string) string
}

// WithFormat selects the report format. Default: [Text].
func WithFormat(f Format) Option {
	return func(cfg *config) { cfg.format = f }
}

// WithWidth sets the wrap width for text reports. Default: [DefaultWidth].
func WithWidth(n int) Option {
	return func(cfg *config) { cfg.width = n }
}

// WithErrorStyle wraps each diagnostic line, e.g. to color it.
func WithErrorStyle(fn func(string) string) Option {
	return func(cfg *config) { cfg.errorStyle = fn }
}

// Reporter prints GLX and EGL capability reports.
type Reporter struct {
	out  *Messenger
	errw io.Writer
	cfg  config
}

// NewReporter returns a Reporter writing reports to stdout and diagnostics
// to stderr.
func NewReporter(stdout, stderr io.Writer, opts ...Option) *Reporter {
	cfg := config{format: Text}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Reporter{
		out:  NewMessenger(stdout, cfg.width),
		errw: stderr,
		cfg:  cfg,
	}
}

// GLXInfo is the GLX report for one X screen. Unsupported attributes are
// empty. Extension lists are comma-delimited.
type GLXInfo struct {
	Target           string     `json:"target" yaml:"target"`
	DirectRendering  string     `json:"direct_rendering" yaml:"direct_rendering"`
	GLXExtensions    string     `json:"glx_extensions" yaml:"glx_extensions"`
	ServerVendor     string     `json:"server_vendor" yaml:"server_vendor"`
	ServerVersion    string     `json:"server_version" yaml:"server_version"`
	ServerExtensions string     `json:"server_extensions" yaml:"server_extensions"`
	ClientVendor     string     `json:"client_vendor" yaml:"client_vendor"`
	ClientVersion    string     `json:"client_version" yaml:"client_version"`
	ClientExtensions string     `json:"client_extensions" yaml:"client_extensions"`
	OpenGLVendor     string     `json:"opengl_vendor" yaml:"opengl_vendor"`
	OpenGLRenderer   string     `json:"opengl_renderer" yaml:"opengl_renderer"`
	OpenGLVersion    string     `json:"opengl_version" yaml:"opengl_version"`
	OpenGLExtensions string     `json:"opengl_extensions" yaml:"opengl_extensions"`
	FBConfigs        []FBConfig `json:"fbconfigs,omitempty" yaml:"fbconfigs,omitempty"`
}

// EGLInfo is the EGL report for one screen or GPU.
type EGLInfo struct {
	Target     string      `json:"target" yaml:"target"`
	Vendor     string      `json:"vendor" yaml:"vendor"`
	Version    string      `json:"version" yaml:"version"`
	Extensions string      `json:"extensions" yaml:"extensions"`
	Configs    []EGLConfig `json:"configs,omitempty" yaml:"configs,omitempty"`
}

type stringField struct {
	attr StringAttribute
	dst  *string
	ext  bool
}

// GLX reports GLX and OpenGL information for every X screen of the system
// named by displayName. On a query failure the report stops, one diagnostic
// line is written to stderr and a *FetchError is returned.
func (r *Reporter) GLX(conn Connector, displayName string) error {
	sys, err := connect(conn, displayName)
	if err != nil {
		return err
	}

	infos := []GLXInfo{}
	err = eachTarget(sys, ScreenTarget, false, func(t Target) error {
		info, err := queryGLX(t)
		if err != nil {
			return &FetchError{Err: err}
		}
		if r.cfg.format.structured() {
			infos = append(infos, info)
			return nil
		}
		return r.printGLX(info)
	})
	closeSystem(sys)
	if err != nil {
		return r.fail("GLX", err)
	}
	if r.cfg.format.structured() {
		return r.encode(infos)
	}
	return nil
}

// EGL reports EGL information. Systems with native driver control are
// reported per X screen; otherwise only the first GPU is reported.
func (r *Reporter) EGL(conn Connector, displayName string) error {
	sys, err := connect(conn, displayName)
	if err != nil {
		return err
	}

	class := ScreenTarget
	if !sys.DriverControl() {
		class = GPUTarget
	}

	infos := []EGLInfo{}
	err = eachTarget(sys, class, class == GPUTarget, func(t Target) error {
		info, err := queryEGL(t)
		if err != nil {
			return &FetchError{Err: err}
		}
		if r.cfg.format.structured() {
			infos = append(infos, info)
			return nil
		}
		return r.printEGL(info)
	})
	closeSystem(sys)
	if err != nil {
		return r.fail("EGL", err)
	}
	if r.cfg.format.structured() {
		return r.encode(infos)
	}
	return nil
}

func (r *Reporter) encode(v any) error {
	if err := encode(r.out.Writer(), r.cfg.format, v); err != nil {
		return err
	}
	return r.out.Flush()
}

func connect(conn Connector, displayName string) (System, error) {
	sys, err := conn.Connect(displayName)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrConnect, displayName, err)
	}
	if sys == nil {
		return nil, fmt.Errorf("%w %q", ErrConnect, displayName)
	}
	Logger().Debug("connected", "display", displayName, "driver_control", sys.DriverControl())
	return sys, nil
}

func closeSystem(sys System) {
	if err := sys.Close(); err != nil {
		Logger().Warn("closing system", "error", err)
	}
}

// eachTarget calls fn for each valid target of class in enumeration order,
// releasing every visited target once fn returns. It stops at the first error,
// or after the first valid target when firstOnly is set.
func eachTarget(sys System, class TargetClass, firstOnly bool, fn func(Target) error) error {
	for _, t := range sys.Targets(class) {
		if !t.Valid() {
			Logger().Debug("skipping target without handle", "class", class, "target", t.Name())
			continue
		}
		if err := visit(t, fn); err != nil {
			return err
		}
		if firstOnly {
			break
		}
	}
	return nil
}

func visit(t Target, fn func(Target) error) error {
	defer release(t)
	return fn(t)
}

func release(t Target) {
	rel, ok := t.(Releaser)
	if !ok {
		return
	}
	if err := rel.Release(); err != nil {
		Logger().Warn("releasing target", "target", t.Name(), "error", err)
	}
}

// FetchError is a failed attribute query that aborted a report. The
// reporter has already written its diagnostic line.
type FetchError struct {
	Report string // "GLX" or "EGL"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s information: %v", e.Report, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// fail writes the diagnostic line for a failed query. Errors other than a
// *FetchError are returned unchanged.
func (r *Reporter) fail(kind string, err error) error {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return err
	}
	fe.Report = kind
	line := fmt.Sprintf("ERROR: Error fetching %s Information: %s", kind, errorText(fe.Err))
	if r.cfg.errorStyle != nil {
		line = r.cfg.errorStyle(line)
	}
	fmt.Fprintln(r.errw, line)
	return fe
}

// --- Queries ---

func queryGLX(t Target) (GLXInfo, error) {
	info := GLXInfo{Target: t.Name()}
	fields := []stringField{
		{GLXDirectRendering, &info.DirectRendering, false},
		{GLXExtensions, &info.GLXExtensions, true},
		{GLXServerVendor, &info.ServerVendor, false},
		{GLXServerVersion, &info.ServerVersion, false},
		{GLXServerExtensions, &info.ServerExtensions, true},
		{GLXClientVendor, &info.ClientVendor, false},
		{GLXClientVersion, &info.ClientVersion, false},
		{GLXClientExtensions, &info.ClientExtensions, true},
		{OpenGLVendor, &info.OpenGLVendor, false},
		{OpenGLRenderer, &info.OpenGLRenderer, false},
		{OpenGLVersion, &info.OpenGLVersion, false},
		{OpenGLExtensions, &info.OpenGLExtensions, true},
	}
	if err := queryStrings(t, fields); err != nil {
		return info, err
	}

	configs, err := t.QueryFBConfigs()
	if err := checkQuery(t, FBConfigsAttribute, err); err != nil {
		return info, err
	}
	info.FBConfigs = untilSentinel(configs, func(c FBConfig) int { return c.ID })
	return info, nil
}

func queryEGL(t Target) (EGLInfo, error) {
	info := EGLInfo{Target: t.Name()}
	fields := []stringField{
		{EGLVendor, &info.Vendor, false},
		{EGLVersion, &info.Version, false},
		{EGLExtensions, &info.Extensions, true},
	}
	if err := queryStrings(t, fields); err != nil {
		return info, err
	}

	configs, err := t.QueryEGLConfigs()
	if err := checkQuery(t, EGLConfigsAttribute, err); err != nil {
		return info, err
	}
	info.Configs = untilSentinel(configs, func(c EGLConfig) int { return c.ID })
	return info, nil
}

func queryStrings(t Target, fields []stringField) error {
	for _, f := range fields {
		v, err := t.QueryString(f.attr)
		if err := checkQuery(t, f.attr.String(), err); err != nil {
			return err
		}
		if f.ext {
			v = formatExtensions(v)
		}
		*f.dst = v
	}
	return nil
}

// checkQuery filters out errors matching ErrNotApplicable and wraps the
// rest with the attribute name.
func checkQuery(t Target, attr string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotApplicable) {
		Logger().Debug("attribute not applicable", "target", t.Name(), "attribute", attr)
		return nil
	}
	return fmt.Errorf("%s: %w", attr, err)
}

// untilSentinel returns s up to its first zero-ID record. A nil slice stays
// nil and a present slice stays non-nil.
func untilSentinel[T any](s []T, id func(T) int) []T {
	if s == nil {
		return nil
	}
	for i, v := range s {
		if id(v) == 0 {
			return s[:i:i]
		}
	}
	return s
}

// --- Text output ---

// lines writes message lines, keeping the first error.
type lines struct {
	m   *Messenger
	err error
}

func (l *lines) msg(prefix, format string, args ...any) {
	if l.err == nil {
		l.err = l.m.Msg(prefix, format, args...)
	}
}

func (l *lines) blank() { l.msg(" ", "\n") }

func (l *lines) table(write func(io.Writer) error) {
	if l.err == nil {
		l.err = write(l.m.Writer())
	}
}

func (l *lines) flush() error {
	if l.err == nil {
		l.err = l.m.Flush()
	}
	return l.err
}

func (r *Reporter) printGLX(info GLXInfo) error {
	l := &lines{m: r.out}
	l.msg("", "GLX Information for %s:", info.Target)
	l.msg(tab, "direct rendering: %s", info.DirectRendering)
	l.msg(tab, "GLX extensions:")
	l.msg(extIndent, "%s", info.GLXExtensions)
	l.blank()
	l.msg(tab, "server glx vendor string: %s", info.ServerVendor)
	l.msg(tab, "server glx version string: %s", info.ServerVersion)
	l.msg(tab, "server glx extensions:")
	l.msg(extIndent, "%s", info.ServerExtensions)
	l.blank()
	l.msg(tab, "client glx vendor string: %s", info.ClientVendor)
	l.msg(tab, "client glx version string: %s", info.ClientVersion)
	l.msg(tab, "client glx extensions:")
	l.msg(extIndent, "%s", info.ClientExtensions)
	l.blank()
	l.msg(tab, "OpenGL vendor string: %s", info.OpenGLVendor)
	l.msg(tab, "OpenGL renderer string: %s", info.OpenGLRenderer)
	l.msg(tab, "OpenGL version string: %s", info.OpenGLVersion)
	l.msg(tab, "OpenGL extensions:")
	l.msg(extIndent, "%s", info.OpenGLExtensions)
	if info.FBConfigs != nil {
		l.blank()
		l.table(func(w io.Writer) error { return WriteFBConfigTable(w, info.FBConfigs) })
	}
	return l.flush()
}

func (r *Reporter) printEGL(info EGLInfo) error {
	l := &lines{m: r.out}
	l.msg("", "EGL Information for %s:", info.Target)
	l.msg(tab, "EGL vendor string: %s", info.Vendor)
	l.msg(tab, "EGL version string: %s", info.Version)
	l.msg(tab, "EGL extensions:")
	l.msg(extIndent, "%s", info.Extensions)
	l.blank()
	if info.Configs != nil {
		l.blank()
		l.table(func(w io.Writer) error { return WriteEGLConfigTable(w, info.Configs) })
	}
	return l.flush()
}
