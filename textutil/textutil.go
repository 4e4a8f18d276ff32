// Package textutil normalizes user-supplied text before it is sent for synthesis.
package textutil

import (
	"strings"
	"unicode/utf8"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Result is normalized text and its length in Unicode code points
type Result struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Normalize converts CRLF and bare CR line endings to LF, trims surrounding
// whitespace and counts the remaining characters as code points.
func Normalize(text string) Result {
	normalized := strings.TrimSpace(lineEndings.Replace(text))
	return Result{
		Text:  normalized,
		Count: utf8.RuneCountInString(normalized),
	}
}

// Count returns the normalized length of text
func Count(text string) int {
	return Normalize(text).Count
}

// Truncate cuts text to at most limit code points and appends suffix when
// something was removed. Used for previews in listings.
func Truncate(text string, limit int, suffix string) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + suffix
}
