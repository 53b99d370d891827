package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var docMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderMarkdown converts documentation comment text to HTML. Raw HTML in the
// comment is dropped, matching goldmark's safe default.
func renderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := docMarkdown.Convert([]byte(dedentMarkdown(text)), &buf); err != nil {
		return "", fmt.Errorf("render documentation: %w", err)
	}
	return buf.String(), nil
}

// dedentMarkdown strips the indentation shared by every non-blank line so a
// leading space after the comment marker does not turn prose into a code block.
func dedentMarkdown(src string) string {
	lines := strings.Split(src, "\n")
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return src
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		}
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}
