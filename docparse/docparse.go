// Package docparse extracts plain text from uploaded documents so it can be
// counted and sent for synthesis.
package docparse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNoText is returned when a document parses but yields no text
var ErrNoText = errors.New("no text extracted")

// Kind is a supported document format
type Kind string

const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindDocx     Kind = "docx"
	KindHTML     Kind = "html"
	KindPDF      Kind = "pdf"
)

// KindOf picks the format from a file name. Unknown extensions are text.
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return KindMarkdown
	case ".docx":
		return KindDocx
	case ".html", ".htm":
		return KindHTML
	case ".pdf":
		return KindPDF
	default:
		return KindText
	}
}

// ParseFile reads path and extracts its text
func ParseFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(filepath.Base(path), f)
}

// Parse extracts text from r, using name to pick the format
func Parse(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	kind := KindOf(name)
	var text string
	switch kind {
	case KindMarkdown:
		text = StripMarkdown(string(data))
	case KindDocx:
		text, err = parseDocx(data)
	case KindHTML:
		text, err = parseHTML(bytes.NewReader(data))
	case KindPDF:
		text, err = parsePDF(data)
	default:
		text = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", kind, err)
	}
	return text, nil
}

var (
	trailingBlanks = regexp.MustCompile(`[ \t]+\n`)
	extraNewlines  = regexp.MustCompile(`\n{3,}`)
)

// tidy removes trailing blanks on each line, limits blank lines to one and
// trims the result
func tidy(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = trailingBlanks.ReplaceAllString(text, "\n")
	text = extraNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
