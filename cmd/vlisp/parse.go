package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vlisp/internal/diagfmt"
	"vlisp/internal/driver"
	"vlisp/internal/observ"
	"vlisp/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.vl> [file.vl...]",
	Short: "Parse VLisp source files and dump their syntax trees",
	Long:  `Parse runs the full reader over VLisp source files and dumps the syntax tree of each. Pass - to read from stdin.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|classic|json)")
	parseCmd.Flags().Bool("tokens", false, "prepend the token sequence before each tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "classic", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	withTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	if withTokens && format == "json" {
		return fmt.Errorf("--tokens is only supported with tree or classic output")
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cache, err := openTokenCache(false)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	timer := observ.NewTimer()
	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
		Timer:          timer,
	}
	prettyOpts := diagfmt.PrettyOpts{Color: useColor, ShowNotes: true}
	headers := !quiet && len(args) > 1

	for idx, path := range args {
		var result *driver.ParseResult
		if path == "-" {
			content, readErr := io.ReadAll(os.Stdin)
			if readErr != nil {
				return fmt.Errorf("failed to read stdin: %w", readErr)
			}
			result = driver.ParseSource(cmd.Context(), fs, "<stdin>", content, opts)
		} else {
			result, err = driver.Parse(cmd.Context(), fs, path, opts)
			if err != nil {
				return fmt.Errorf("parse failed: %w", err)
			}
		}

		if result.Bag.HasErrors() || result.Bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, result.Bag, fs, prettyOpts)
		}
		if result.File == nil {
			continue
		}

		if headers {
			fmt.Fprintf(os.Stdout, "== %s ==\n", result.File.Path)
		}
		// The scan can finish clean while the build fails, so the token
		// line may print without a tree below it.
		if withTokens && result.Tokens != nil {
			if err = diagfmt.TokensClassic(os.Stdout, result.File, result.Tokens); err != nil {
				return err
			}
		}
		if result.Tree != nil {
			switch format {
			case "tree":
				err = diagfmt.TreePretty(os.Stdout, result.File, result.Tree)
			case "classic":
				err = diagfmt.TreeClassic(os.Stdout, result.File, result.Tree)
			case "json":
				err = diagfmt.TreeJSON(os.Stdout, result.File, result.Tree)
			}
			if err != nil {
				return err
			}
		}
		if headers && idx < len(args)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}

	return emitTimings(cmd, timer)
}
