package types

import (
	"regexp"
	"strings"
)

// Control characters that break XML output. Tab, LF and CR are allowed.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

// CleanText strips the UTF-8 BOM and XML-unsafe control characters.
// Every textual field of an Item passes through here before use.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\uFEFF", "")
	return controlChars.ReplaceAllString(s, "")
}

// Truncate shortens s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
