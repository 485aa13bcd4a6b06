package glinfo

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 80

// Messenger writes word-wrapped, prefixed message lines to an output sink.
type Messenger struct {
	w     io.Writer
	width int
}

// NewMessenger returns a Messenger writing to w and wrapping at width
// columns. A width below one selects [DefaultWidth].
func NewMessenger(w io.Writer, width int) *Messenger {
	if width < 1 {
		width = DefaultWidth
	}
	return &Messenger{w: w, width: width}
}

// Writer returns the underlying sink, for output that must not be wrapped.
func (m *Messenger) Writer() io.Writer { return m.w }

// Width returns the wrap width.
func (m *Messenger) Width() int { return m.width }

// Msg formats a message and writes it as one or more lines. The first line
// starts with prefix and continuation lines are indented to the same column.
// Newlines in the message start new lines; a trailing newline does not.
func (m *Messenger) Msg(prefix, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	var sb strings.Builder
	for _, line := range wrapMessage(prefix, msg, m.width) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(m.w, sb.String())
	return err
}

// Flush flushes the sink when it buffers output.
func (m *Messenger) Flush() error {
	switch f := m.w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case interface{ Flush() }:
		f.Flush()
	}
	return nil
}

// wrapMessage splits msg into lines no wider than width, including the
// prefix column.
func wrapMessage(prefix, msg string, width int) []string {
	indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
	avail := width - len(indent)
	if avail < 1 {
		avail = 1
	}

	paras := strings.Split(msg, "\n")
	if len(paras) > 1 && paras[len(paras)-1] == "" {
		paras = paras[:len(paras)-1]
	}

	var lines []string
	lead := prefix
	for _, p := range paras {
		for _, seg := range wrapWords(p, avail) {
			lines = append(lines, lead+seg)
			lead = indent
		}
	}
	return lines
}

// wrapWords breaks s at spaces so each piece is narrower than width. A word
// that does not fit is split at the width.
func wrapWords(s string, width int) []string {
	var lines []string
	for {
		if runewidth.StringWidth(s) < width {
			return append(lines, s)
		}
		cut := runewidth.Truncate(s, width, "")
		if cut == "" {
			// Advance at least one rune so a wide rune cannot stall the loop.
			cut = string([]rune(s)[0])
		}

		brk := strings.LastIndexAny(cut, " \t")
		if len(cut) < len(s) && isBlank(s[len(cut)]) {
			brk = len(cut)
		}

		var line, rest string
		if brk > 0 {
			line, rest = s[:brk], strings.TrimLeft(s[brk:], " \t")
		} else {
			line, rest = cut, s[len(cut):]
		}
		lines = append(lines, line)
		if rest == "" {
			return lines
		}
		s = rest
	}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }
