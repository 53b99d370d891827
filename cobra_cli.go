package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
makepage renders a source file with /// and //! documentation comments as an
annotated HTML listing: documentation on the left, the untouched source on the
right, one table row per declaration.

Recognized declarations start a new row:

  • pub const NAME              (linked to NAME's page when it is an @import)
  • pub fn NAME / pub inline fn NAME
  • indented pub fn NAME        (methods inside a struct or enum body)

The second argument is the file's logical path inside the generated site. It
is used for the page title and to find styles.css and the index page relative
to the page.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "makepage [flags] FILE LOGICAL-PATH",
		Short:         "Render an annotated HTML page from a documented source file",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	persistent := cmd.PersistentFlags()
	persistent.BoolVar(&app.opts.markdown, "markdown", false, "render documentation comments as Markdown")
	persistent.StringVar(&app.opts.logLevel, "log-level", "", "log level on stderr: debug, info, warn, error")
	persistent.StringVar(&app.opts.titleSuffix, "title-suffix", "", "text appended to the page title (default \"Zig standard library\")")
	persistent.StringVar(&app.opts.indexPage, "index-page", "", "index page linked from every page header (default \"std.zig.html\")")
	persistent.StringVar(&app.opts.stylesheet, "stylesheet", "", "stylesheet name at the site root (default \"styles.css\")")
	persistent.StringSliceVar(&app.opts.extensions, "ext", nil, "source extensions recognized in @import and site walks (default .zig)")

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "write the page to a file instead of stdout")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.renderOne(args[0], args[1])
	}

	cmd.AddCommand(newSiteCmd(app))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newSiteCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site [flags] [SOURCE-DIR] [OUTPUT-DIR]",
		Short: "Render every source file under a directory",
		Long: strings.TrimSpace(`
Render one page per source file under SOURCE-DIR into OUTPUT-DIR, mirroring the
directory layout. Each page's logical path is its path relative to SOURCE-DIR,
and OUTPUT-DIR receives the shared stylesheet.

Settings can also come from a YAML file passed with --config; flags and
positional arguments take precedence over it.

Example:

  makepage site ./lib/std ./docs
`),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.Flags()
	flags.StringVarP(&app.site.configPath, "config", "c", "", "YAML site configuration file")
	flags.IntVarP(&app.site.workers, "workers", "j", 0, "pages rendered in parallel (default: number of CPUs)")
	flags.StringVar(&app.site.stylesheetFile, "stylesheet-file", "", "copy this file to the site stylesheet instead of the built-in one")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		changed := func(name string) bool {
			return cmd.Flags().Changed(name)
		}
		return app.buildSite(ctx, args, changed)
	}
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for makepage.

The output should be evaluated by your shell. For example:

  # bash
  makepage completion bash > /usr/local/etc/bash_completion.d/makepage

  # zsh
  makepage completion zsh > "${fpath[1]}/_makepage"

  # fish
  makepage completion fish | source

  # PowerShell
  makepage completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  makepage gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
