package util

import (
	"regexp"
	"strings"
)

var controlBytes = regexp.MustCompile(`[\x00-\x1F\x7F]+`)

// SanitizeForLog flattens request-supplied text onto a single line. Newlines
// and other control bytes collapse to spaces so injected content cannot forge
// additional log records.
func SanitizeForLog(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return controlBytes.ReplaceAllString(s, " ")
}
