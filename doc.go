// # makepage
//
// `makepage` turns a documented source file into a static, two-column HTML
// listing: prose from `///` and `//!` comments on the left, the source itself
// on the right. It is built for the Zig standard library layout, where every
// file becomes `<path>.html` next to a shared `styles.css` and an index page
// `std.zig.html` at the site root.
//
// The renderer makes one pass over the file. Each line is checked, in order,
// against these rules and every rule that matches fires:
//
//   - `///` or `//!` lines are documentation. Their text is held until the
//     next heading or code cell claims it; a blank one becomes `<br><br>`.
//     Documentation lines never reach the code column.
//   - `pub const NAME` at column 0 starts a new row tagged `value` and emits
//     `<h2>NAME</h2>`. A `@import("x.zig")` on the same line adds a link to
//     `x.zig.html`.
//   - `pub fn NAME` or `pub inline fn NAME` at column 0 starts a new row and
//     emits `<h2>NAME()</h2>`.
//   - An indented `pub fn NAME` starts a new row tagged `method` and emits
//     `<h2>NAME</h2>`.
//   - Everything else is code, copied verbatim.
//
// Nothing is parsed beyond these prefixes: unusual input degrades to plain
// code rather than failing. The only fatal condition is an unreadable file.
//
// ## Usage
//
//	makepage [flags] FILE LOGICAL-PATH
//
// LOGICAL-PATH names the page inside the site. Each `/` in it adds one `../`
// to the links to the stylesheet and the index page:
//
//	makepage lib/std/fmt/parse_float.zig fmt/parse_float.zig > docs/fmt/parse_float.zig.html
//
// ## Flags
//
//   - `-o FILE`: write the page to `FILE` instead of stdout.
//   - `--markdown`: render documentation through goldmark instead of wrapping
//     it in a single paragraph.
//   - `--ext .zig,.zon`: extensions recognized in `@import` links.
//   - `--title-suffix`, `--index-page`, `--stylesheet`: page boilerplate.
//   - `--log-level`: diagnostics on stderr.
//
// ## Site Mode
//
// `makepage site SRC OUT` renders every matching file under `SRC` into `OUT`
// in parallel and writes the built-in stylesheet next to them. A YAML file
// passed with `--config` can hold the same settings:
//
//	source: lib/std
//	output: docs
//	workers: 8
//	page:
//	  title_suffix: Zig standard library
//
// ## Shell Completion and CLI Docs
//
//	makepage completion bash
//	makepage gen-docs ./docs/cli
package main
