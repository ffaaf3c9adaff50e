package util

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// Truncate shortens text to at most limit characters (code points). When it
// cuts, the result ends with "..." and the marker counts toward the limit.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	head := strings.TrimRight(string(runes[:limit-len(ellipsis)]), " \t\r\n")
	return head + ellipsis
}

// CharCount counts code points.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}

// WordCount counts whitespace separated, non-empty tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
