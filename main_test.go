package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"testdata/std/fmt/parse_float.zig", "fmt/parse_float.zig"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "<title>fmt/parse_float.zig - Zig standard library</title>")
	assertContains(t, out, `<link rel="stylesheet" href="../styles.css">`)
	assertContains(t, out, `<a href="../std.zig.html">std</a>`)
	assertContains(t, out, "<h2>parseFloat()</h2>\n<p> Parses floating point numbers.</p>\n")
	assertContains(t, out, "pub fn parseFloat(comptime T: type, s: []const u8) !T {\n")
}

func TestRenderCommandFlags(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"--markdown", "--title-suffix", "Example", "--ext", "zig", "testdata/std/std.zig", "std.zig"}
	if err := run(args, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "<title>std.zig - Example</title>")
	assertContains(t, out, "<p>Ties return <code>a</code>.</p>")
	assertContains(t, out, `<a href="fmt.zig.html">fmt.zig</a>`)
}

func TestOutputFlagWritesFile(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "out", "std.zig.html")
	if err := run([]string{"-o", target, "testdata/std/std.zig", "std.zig"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertContains(t, string(content), "<h2>List</h2>")
}

func TestMissingSourceFails(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"testdata/std/nope.zig", "nope.zig"}, &buf)
	if err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
	assertContains(t, err.Error(), "read source")
	if buf.Len() != 0 {
		t.Fatalf("expected no page output, got %q", buf.String())
	}
}

func TestArgumentCount(t *testing.T) {
	if err := run([]string{"testdata/std/std.zig"}, io.Discard); err == nil {
		t.Fatalf("expected an error when the logical path is missing")
	}
}

func TestSiteCommand(t *testing.T) {
	tmp := t.TempDir()
	var buf bytes.Buffer
	if err := run([]string{"site", "-j", "2", "testdata/std", tmp}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, buf.String(), "rendered 3 pages")
	for _, name := range []string{"std.zig.html", "fmt.zig.html", "fmt/parse_float.zig.html", "styles.css"} {
		if _, err := os.Stat(filepath.Join(tmp, filepath.FromSlash(name))); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(tmp, "README.md.html")); err == nil {
		t.Fatalf("non-source files must not be rendered")
	}
	nested, err := os.ReadFile(filepath.Join(tmp, "fmt", "parse_float.zig.html"))
	if err != nil {
		t.Fatalf("read nested page: %v", err)
	}
	assertContains(t, string(nested), `href="../styles.css"`)
	assertContains(t, string(nested), "<title>fmt/parse_float.zig - Zig standard library</title>")
}

func TestSiteConfigFile(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "site")
	cfg := filepath.Join(tmp, "makepage.yaml")
	source, err := filepath.Abs(filepath.Join("testdata", "std"))
	if err != nil {
		t.Fatal(err)
	}
	body := "source: " + source + "\n" +
		"output: " + out + "\n" +
		"workers: 1\n" +
		"page:\n" +
		"  title_suffix: Configured\n" +
		"  stylesheet: site.css\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"site", "--config", cfg}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	page, err := os.ReadFile(filepath.Join(out, "std.zig.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	assertContains(t, string(page), "<title>std.zig - Configured</title>")
	assertContains(t, string(page), `href="site.css"`)
	if _, err := os.Stat(filepath.Join(out, "site.css")); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}

func TestSiteFlagsOverrideConfig(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "site")
	cfg := filepath.Join(tmp, "makepage.yaml")
	css := filepath.Join(tmp, "theme.css")
	if err := os.WriteFile(css, []byte("td.code{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	body := "source: testdata/does-not-exist\n" +
		"output: " + filepath.Join(tmp, "unused") + "\n" +
		"extensions: [\".zon\"]\n" +
		"markdown: false\n" +
		"page:\n" +
		"  title_suffix: FromConfig\n" +
		"  index_page: config.html\n" +
		"  stylesheet: config.css\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	args := []string{
		"site", "--config", cfg,
		"--title-suffix", "FromFlag",
		"--index-page", "index.html",
		"--stylesheet", "flag.css",
		"--stylesheet-file", css,
		"--markdown",
		"--ext", "zig",
		"testdata/std", out,
	}
	if err := run(args, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	page, err := os.ReadFile(filepath.Join(out, "std.zig.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	text := string(page)
	assertContains(t, text, "<title>std.zig - FromFlag</title>")
	assertContains(t, text, `<link rel="stylesheet" href="flag.css">`)
	assertContains(t, text, `<a href="index.html">std</a>`)
	assertContains(t, text, "<p>Ties return <code>a</code>.</p>")
	if strings.Contains(text, "FromConfig") {
		t.Fatalf("config title suffix must lose to the flag\n\n%s", text)
	}
	sheet, err := os.ReadFile(filepath.Join(out, "flag.css"))
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if string(sheet) != "td.code{}" {
		t.Fatalf("expected copied stylesheet, got %q", sheet)
	}
	if _, err := os.Stat(filepath.Join(out, "config.css")); err == nil {
		t.Fatalf("config stylesheet name must not be used")
	}
}

func TestOutputFlagRemovesPartialFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.html")
	if err := run([]string{"-o", target, "testdata/std/nope.zig", "nope.zig"}, io.Discard); err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed, stat err: %v", target, err)
	}
}

func TestSiteConfigRejectsUnknownFields(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "makepage.yaml")
	if err := os.WriteFile(cfg, []byte("sources: lib\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := run([]string{"site", "--config", cfg}, io.Discard)
	if err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
	assertContains(t, err.Error(), "parse config")
}

func TestSiteWithoutSources(t *testing.T) {
	src := t.TempDir()
	err := run([]string{"site", src, filepath.Join(t.TempDir(), "out")}, io.Discard)
	if err == nil {
		t.Fatalf("expected an error for a tree without source files")
	}
	assertContains(t, err.Error(), "no source files")
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\n%s", needle, haystack)
	}
}

func TestHelpFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "makepage [flags] FILE LOGICAL-PATH")
	assertContains(t, out, "--markdown")
	assertContains(t, out, "Render every source file under a directory")
}

func TestVersionFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--version"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, buf.String(), "makepage version "+Version)
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"completion", "bash"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected completion output")
	}
	assertContains(t, buf.String(), "__start_makepage")
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	if err := run([]string{"completion", "tcsh"}, io.Discard); err == nil {
		t.Fatalf("expected an error for an unsupported shell")
	}
}

func TestGenDocsCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", tmp}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var foundRoot, foundSite bool
	for _, f := range files {
		switch f.Name() {
		case "makepage.md":
			foundRoot = true
		case "makepage_site.md":
			foundSite = true
		}
	}
	if !foundRoot || !foundSite {
		t.Fatalf("expected makepage.md and makepage_site.md in docs output, got %v", files)
	}
}
