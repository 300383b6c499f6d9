package ingest

import "strings"

// SanitizeText keeps printable ASCII plus newline, carriage return and tab.
// NUL, surrogate code points and everything else are dropped.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\r', r == '\t':
			return r
		case r >= 0x20 && r <= 0x7E:
			return r
		default:
			return -1
		}
	}, s)
}
