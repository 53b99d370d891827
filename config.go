package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// siteConfig describes a site build. Zero values are filled from defaults by
// applyDefaults.
type siteConfig struct {
	Source         string     `yaml:"source"`
	Output         string     `yaml:"output"`
	Extensions     []string   `yaml:"extensions"`
	Workers        int        `yaml:"workers"`
	Markdown       bool       `yaml:"markdown"`
	Page           pageConfig `yaml:"page"`
	StylesheetFile string     `yaml:"stylesheet_file"`
}

type pageConfig struct {
	TitleSuffix string `yaml:"title_suffix"`
	IndexPage   string `yaml:"index_page"`
	IndexLabel  string `yaml:"index_label"`
	Stylesheet  string `yaml:"stylesheet"`
}

func loadSiteConfig(path string) (siteConfig, error) {
	var cfg siteConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *siteConfig) applyDefaults() {
	if c.Source == "" {
		c.Source = "."
	}
	if c.Output == "" {
		c.Output = "docs"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".zig"}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func (c siteConfig) validate() error {
	if c.Source == c.Output {
		return errors.New("source and output directories must differ")
	}
	return nil
}

// pageOptions merges the page section over the renderer defaults.
func (c siteConfig) pageOptions() pageOptions {
	opts := defaultPageOptions()
	opts.markdown = c.Markdown
	if len(c.Extensions) > 0 {
		opts.extensions = c.Extensions
	}
	if c.Page.TitleSuffix != "" {
		opts.titleSuffix = c.Page.TitleSuffix
	}
	if c.Page.IndexPage != "" {
		opts.indexPage = c.Page.IndexPage
	}
	if c.Page.IndexLabel != "" {
		opts.indexLabel = c.Page.IndexLabel
	}
	if c.Page.Stylesheet != "" {
		opts.stylesheet = c.Page.Stylesheet
	}
	return opts
}
