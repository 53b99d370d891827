package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

//go:embed styles.css
var defaultStylesheet []byte

type sitePage struct {
	path    string
	logical string
}

// buildSite renders every source file under cfg.Source into cfg.Output and
// returns the number of pages written.
func buildSite(ctx context.Context, cfg siteConfig, logger *slog.Logger) (int, error) {
	pages, err := collectSitePages(cfg.Source, cfg.Output, cfg.Extensions)
	if err != nil {
		return 0, err
	}
	if len(pages) == 0 {
		return 0, fmt.Errorf("no source files with extensions %s under %s", strings.Join(cfg.Extensions, ", "), cfg.Source)
	}
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return 0, err
	}
	if err := writeStylesheet(cfg); err != nil {
		return 0, err
	}

	opts := cfg.pageOptions()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, page := range pages {
		page := page
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(cfg.Output, filepath.FromSlash(page.logical)+".html")
			if err := writePage(target, page, opts); err != nil {
				return err
			}
			logger.Debug("rendered page", "source", page.path, "logical", page.logical, "target", target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	logger.Info("site built", "pages", len(pages), "output", cfg.Output)
	return len(pages), nil
}

func collectSitePages(root, output string, extensions []string) ([]sitePage, error) {
	skip, err := filepath.Abs(output)
	if err != nil {
		return nil, fmt.Errorf("resolve output %s: %w", output, err)
	}
	var pages []sitePage
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if abs == skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExtension(path, extensions) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		pages = append(pages, sitePage{path: path, logical: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].logical < pages[j].logical
	})
	return pages, nil
}

func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func writePage(target string, page sitePage, opts pageOptions) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := renderFile(f, page.path, page.logical, opts); err != nil {
		return fmt.Errorf("%s: %w", page.path, err)
	}
	return nil
}

func writeStylesheet(cfg siteConfig) error {
	name := cfg.pageOptions().stylesheet
	data := defaultStylesheet
	if cfg.StylesheetFile != "" {
		custom, err := os.ReadFile(cfg.StylesheetFile)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stylesheet %s does not exist", cfg.StylesheetFile)
			}
			return err
		}
		data = custom
	}
	target := filepath.Join(cfg.Output, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
