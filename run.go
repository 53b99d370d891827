package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type options struct {
	markdown    bool
	outputPath  string
	logLevel    string
	titleSuffix string
	indexPage   string
	stylesheet  string
	extensions  []string
}

type siteOptions struct {
	configPath     string
	workers        int
	stylesheetFile string
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	site   siteOptions
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout, os.Stderr)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) logger(fallback string) (*slog.Logger, error) {
	raw := app.opts.logLevel
	if raw == "" {
		raw = fallback
	}
	level, err := parseLogLevel(raw)
	if err != nil {
		return nil, err
	}
	return newLogger(app.stderr, level), nil
}

func (app *cliApp) pageOptions() pageOptions {
	opts := defaultPageOptions()
	opts.markdown = app.opts.markdown
	if app.opts.titleSuffix != "" {
		opts.titleSuffix = app.opts.titleSuffix
	}
	if app.opts.indexPage != "" {
		opts.indexPage = app.opts.indexPage
	}
	if app.opts.stylesheet != "" {
		opts.stylesheet = app.opts.stylesheet
	}
	if exts := normalizeExtensions(app.opts.extensions); len(exts) > 0 {
		opts.extensions = exts
	}
	return opts
}

// renderOne renders a single source file to stdout or the -o target.
func (app *cliApp) renderOne(path, logical string) error {
	logger, err := app.logger("warn")
	if err != nil {
		return err
	}
	logger.Debug("rendering page", "source", path, "logical", logical, "prefix", relativePrefix(logical))
	opts := app.pageOptions()
	if app.opts.outputPath == "" || app.opts.outputPath == "-" {
		return renderFile(app.stdout, path, logical, opts)
	}
	if err := os.MkdirAll(filepath.Dir(app.opts.outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(app.opts.outputPath)
	if err != nil {
		return err
	}
	err = renderFile(f, path, logical, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(app.opts.outputPath); rerr != nil {
			logger.Warn("could not remove partial page", "target", app.opts.outputPath, "error", rerr)
		}
		return err
	}
	logger.Info("wrote page", "target", app.opts.outputPath)
	return nil
}

// buildSite resolves the site configuration from the config file, positional
// arguments and flags, in increasing priority.
func (app *cliApp) buildSite(ctx context.Context, args []string, changed func(string) bool) error {
	logger, err := app.logger("info")
	if err != nil {
		return err
	}
	cfg, err := loadSiteConfig(app.site.configPath)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}
	if changed("markdown") {
		cfg.Markdown = app.opts.markdown
	}
	if changed("workers") {
		cfg.Workers = app.site.workers
	}
	if changed("ext") {
		cfg.Extensions = normalizeExtensions(app.opts.extensions)
	}
	if changed("title-suffix") {
		cfg.Page.TitleSuffix = app.opts.titleSuffix
	}
	if changed("index-page") {
		cfg.Page.IndexPage = app.opts.indexPage
	}
	if changed("stylesheet") {
		cfg.Page.Stylesheet = app.opts.stylesheet
	}
	if changed("stylesheet-file") {
		cfg.StylesheetFile = app.site.stylesheetFile
	}
	cfg.Extensions = normalizeExtensions(cfg.Extensions)
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}
	n, err := buildSite(ctx, cfg, logger)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(app.stdout, "rendered %d pages into %s\n", n, cfg.Output)
	return err
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
