package docparse

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var inlineSpace = regexp.MustCompile(`[ \t\r\f\v]+`)

func parseHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return tidy(collapseSpaces(extractText(doc))), nil
}

func extractText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			buf.WriteString(strings.ReplaceAll(node.Data, "\n", " "))
		case html.ElementNode:
			switch node.Data {
			case "script", "style", "head":
				return
			case "br":
				buf.WriteString("\n")
			case "li":
				buf.WriteString("\n- ")
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if node.Type == html.ElementNode {
			switch node.Data {
			case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr":
				buf.WriteString("\n\n")
			case "ul", "ol":
				buf.WriteString("\n")
			}
		}
	}
	walk(n)
	return buf.String()
}

func collapseSpaces(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
	}
	return strings.Join(lines, "\n")
}
