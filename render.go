package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	docCommentPattern = regexp.MustCompile(`^//[!/]`)
	constDeclPattern  = regexp.MustCompile(`^pub const (\w+)`)
	funcDeclPattern   = regexp.MustCompile(`^pub( inline)? fn (\w+)`)
	methodDeclPattern = regexp.MustCompile(`^\s+pub( inline)? fn (\w+)`)
	importPattern     = regexp.MustCompile(`@import\("([^"]*)"\)`)
)

// pageOptions controls the page boilerplate and how documentation is emitted.
type pageOptions struct {
	titleSuffix string
	indexPage   string
	indexLabel  string
	stylesheet  string
	// extensions lists the source extensions an @import must end in to be linked.
	extensions []string
	markdown   bool
}

func defaultPageOptions() pageOptions {
	return pageOptions{
		titleSuffix: "Zig standard library",
		indexPage:   "std.zig.html",
		indexLabel:  "std",
		stylesheet:  "styles.css",
		extensions:  []string{".zig"},
	}
}

// renderFile reads path and streams the annotated page for it to w.
func renderFile(w io.Writer, path, logical string, opts pageOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	defer f.Close()
	return renderPage(w, f, logical, opts)
}

// renderPage makes a single pass over src. Every line is classified, the
// renderer state updated and the matching HTML written before the next line is
// read.
func renderPage(w io.Writer, src io.Reader, logical string, opts pageOptions) error {
	out := bufio.NewWriter(w)
	r := &pageRenderer{
		out:  out,
		opts: opts,
		docs: docBuffer{markdown: opts.markdown},
	}
	r.writeHeader(logical)

	in := bufio.NewReader(src)
	for {
		line, err := in.ReadString('\n')
		if line != "" {
			r.processLine(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
	}

	r.writeFooter()
	if r.err != nil {
		return r.err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// pageRenderer holds the state of one pass. It is never shared.
type pageRenderer struct {
	out    *bufio.Writer
	opts   pageOptions
	docs   docBuffer
	inCode bool
	err    error
}

func (r *pageRenderer) processLine(raw string) {
	line := strings.TrimRight(raw, "\n")

	if docCommentPattern.MatchString(line) {
		r.docs.add(strings.TrimSuffix(line[3:], "\r"))
		return
	}

	if m := constDeclPattern.FindStringSubmatch(line); m != nil {
		if r.inCode {
			r.newChunk("value")
		}
		r.printf("<h2>%s</h2>\n", m[1])
		if target := r.importTarget(line); target != "" {
			r.printf("<a href=\"%s.html\">%s</a>\n", target, target)
		}
		r.flushDocs()
		r.inCode = false
	}

	if m := funcDeclPattern.FindStringSubmatch(line); m != nil {
		if r.inCode {
			r.newChunk("")
		}
		r.printf("<h2>%s()</h2>\n", m[2])
		r.flushDocs()
		r.inCode = false
	}

	if m := methodDeclPattern.FindStringSubmatch(line); m != nil {
		if r.inCode {
			r.newChunk("method")
		}
		r.printf("<h2>%s</h2>\n", m[2])
		r.flushDocs()
		r.inCode = false
	}

	if !r.inCode {
		r.inCode = true
		r.flushDocs()
		r.printf("</td>\n<td class=\"code\">\n")
	}
	r.printf("%s\n", line)
}

// importTarget returns the @import path on line when it names a source file
// with one of the recognized extensions.
func (r *pageRenderer) importTarget(line string) string {
	m := importPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	for _, ext := range r.opts.extensions {
		if strings.HasSuffix(m[1], ext) {
			return m[1]
		}
	}
	return ""
}

// newChunk ends the current row and opens the documentation cell of the next.
func (r *pageRenderer) newChunk(tag string) {
	class := "doc"
	if tag != "" {
		class += " " + tag
	}
	r.printf("</td></tr>\n<tr><td class=\"%s\">\n", class)
}

func (r *pageRenderer) flushDocs() {
	text, ok := r.docs.flush()
	if !ok {
		return
	}
	if r.opts.markdown {
		rendered, err := renderMarkdown(text)
		if err != nil {
			r.setErr(err)
			return
		}
		r.printf("%s", rendered)
		return
	}
	r.printf("<p>%s</p>\n", text)
}

func (r *pageRenderer) writeHeader(logical string) {
	prefix := relativePrefix(logical)
	name := html.EscapeString(logical)
	r.printf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>%s - %s</title>
    <link rel="stylesheet" href="%s%s">
</head>
<body>

<table><tbody>
<tr><td class="doc">
<h1>
  <a href="%s%s">%s</a> /
  %s
</h1>
`, name, html.EscapeString(r.opts.titleSuffix), prefix, html.EscapeString(r.opts.stylesheet),
		prefix, html.EscapeString(r.opts.indexPage), html.EscapeString(r.opts.indexLabel), name)
}

func (r *pageRenderer) writeFooter() {
	r.printf("</td></tr>\n</tbody></table>\n</body>\n</html>\n")
}

func (r *pageRenderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		r.setErr(fmt.Errorf("write page: %w", err))
	}
}

func (r *pageRenderer) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

// relativePrefix climbs one directory per slash in the logical path.
func relativePrefix(logical string) string {
	return strings.Repeat("../", strings.Count(logical, "/"))
}

// docBuffer accumulates documentation comment text until a heading or a code
// cell claims it.
type docBuffer struct {
	pieces   []string
	markdown bool
}

func (b *docBuffer) add(text string) {
	if strings.TrimSpace(text) == "" {
		if b.markdown {
			text = ""
		} else {
			text = "<br><br>"
		}
	}
	b.pieces = append(b.pieces, text)
}

// flush returns the pending text and empties the buffer. ok is false when
// nothing is pending.
func (b *docBuffer) flush() (text string, ok bool) {
	if len(b.pieces) == 0 {
		return "", false
	}
	text = strings.Join(b.pieces, "\n")
	b.pieces = b.pieces[:0]
	return text, true
}
