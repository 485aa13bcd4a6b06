// Package glinfo reports the OpenGL, GLX and EGL capabilities a display
// driver exposes for its screens and GPUs.
//
// The package does not talk to a driver itself. Attribute acquisition is
// delegated to a [Connector], which resolves a display name into a [System]
// whose [Target] values answer string and configuration-table queries. The
// snapshot sub-package provides a file-backed implementation.
//
// # Reports
//
// A [Reporter] runs one pass per report kind:
//
//	r := glinfo.NewReporter(os.Stdout, os.Stderr)
//	if err := r.GLX(conn, ":0"); err != nil { ... }
//	if err := r.EGL(conn, ":0"); err != nil { ... }
//
// [Reporter.GLX] visits every X screen. [Reporter.EGL] visits X screens when
// the system exposes native driver control and otherwise only the first GPU.
// Attributes a target does not support (errors matching [ErrNotApplicable])
// print as empty fields; any other query error aborts the report with a single
// diagnostic line.
//
// # Tables
//
// [WriteFBConfigTable] and [WriteEGLConfigTable] render configuration
// records as fixed-column tables whose layout is stable for scripts that parse
// it. Small enumerations are abbreviated by the classifier functions such as
// [RenderTypeAbbrev] and [EGLConfigCaveatAbbrev].
//
// # Extension lists
//
// [FormatExtensionList] turns a space-delimited extension string into a
// comma-delimited one so the message sink can wrap it on word boundaries.
//
// # Formats
//
// Use [ParseFormat] to convert a CLI flag into a [Format]. [Text] streams the
// classic report; [JSON] and [YAML] encode the collected per-target values once
// the report completes.
//
// # Errors
//
//   - [ErrNotApplicable] — attribute not supported by the target
//   - [ErrConnect] — the display name could not be resolved
//   - [ErrUnsupportedFormat] — unknown format string
//   - [ErrUnknownAttribute] — unknown attribute name
package glinfo
