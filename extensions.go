package glinfo

import "strings"

// FormatExtensionList inserts a comma before every space of a space-delimited
// extension list, so "a b c" becomes "a, b, c". Reading stops at the first
// newline, and trailing spaces and commas are stripped from the result.
//
// The boolean is false when ext is empty, in which case callers should keep
// the original value.
func FormatExtensionList(ext string) (string, bool) {
	if ext == "" {
		return "", false
	}
	if i := strings.IndexByte(ext, '\n'); i >= 0 {
		ext = ext[:i]
	}

	var sb strings.Builder
	sb.Grow(len(ext) + strings.Count(ext, " "))
	for i := 0; i < len(ext); i++ {
		if ext[i] == ' ' {
			sb.WriteByte(',')
		}
		sb.WriteByte(ext[i])
	}
	return strings.TrimRight(sb.String(), " ,"), true
}

// formatExtensions returns the formatted list, or ext unchanged when there is
// nothing to format.
func formatExtensions(ext string) string {
	if s, ok := FormatExtensionList(ext); ok {
		return s
	}
	return ext
}
