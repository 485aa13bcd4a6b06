// glinfo prints the GLX and EGL capabilities a display driver reports.
//
// Usage:
//
//	glinfo -snapshot driver.yaml
//	glinfo -snapshot driver.toml -egl -format json
//
// Attributes are served from a capability snapshot (YAML, JSON or TOML). When
// neither -glx nor -egl is given both reports are printed.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/bjaus/glinfo"
	"github.com/bjaus/glinfo/snapshot"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("glinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	displayFlag := fs.String("display", os.Getenv("DISPLAY"), "Display name to report on")
	snapshotFlag := fs.String("snapshot", "", "Capability snapshot file (yaml, json or toml)")
	glxFlag := fs.Bool("glx", false, "Print GLX information")
	eglFlag := fs.Bool("egl", false, "Print EGL information")
	formatFlag := fs.String("format", "text", "Output format: text, json, yaml")
	widthFlag := fs.Int("width", 0, "Wrap width (default: terminal width or 80)")
	verboseFlag := fs.Bool("v", false, "Log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	format, err := glinfo.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(stderr, "glinfo: %v\n", err)
		return 2
	}
	if *snapshotFlag == "" {
		fmt.Fprintf(stderr, "glinfo: -snapshot is required\n")
		return 2
	}

	if *verboseFlag {
		glinfo.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer glinfo.SetLogger(nil)
	}

	snap, err := snapshot.Load(*snapshotFlag)
	if err != nil {
		fmt.Fprintf(stderr, "glinfo: %v\n", err)
		return 1
	}

	width := *widthFlag
	if width <= 0 {
		width = termWidth(stdout)
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	opts := []glinfo.Option{glinfo.WithFormat(format), glinfo.WithWidth(width)}
	if isTTYWriter(stderr) {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		opts = append(opts, glinfo.WithErrorStyle(func(s string) string { return style.Render(s) }))
	}
	r := glinfo.NewReporter(out, stderr, opts...)

	both := !*glxFlag && !*eglFlag
	code := 0
	if *glxFlag || both {
		code = max(code, report(r.GLX, snap, *displayFlag, stderr))
	}
	if *eglFlag || both {
		code = max(code, report(r.EGL, snap, *displayFlag, stderr))
	}
	return code
}

// report runs one report. Fetch failures have already been diagnosed by the
// reporter; anything else is printed here.
func report(fn func(glinfo.Connector, string) error, conn glinfo.Connector, display string, stderr io.Writer) int {
	err := fn(conn, display)
	if err == nil {
		return 0
	}
	var fe *glinfo.FetchError
	if !errors.As(err, &fe) {
		fmt.Fprintf(stderr, "glinfo: %v\n", err)
	}
	return 1
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return glinfo.DefaultWidth
}
