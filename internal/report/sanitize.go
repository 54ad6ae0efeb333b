package report

import (
	"regexp"
	"strings"
)

// maxFilenameLen bounds sanitized names inside the archive.
const maxFilenameLen = 64

var nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SanitizeFilename collapses every run of non-alphanumeric characters into a
// single underscore, strips leading/trailing underscores and truncates to
// maxFilenameLen. The result contains only [A-Za-z0-9_] and the function is
// idempotent.
func SanitizeFilename(s string) string {
	s = nonAlnumRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxFilenameLen {
		s = strings.TrimRight(s[:maxFilenameLen], "_")
	}
	return s
}
