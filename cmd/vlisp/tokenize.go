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

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.vl> [file.vl...]",
	Short: "Scan VLisp source files into tokens",
	Long:  `Tokenize scans VLisp source files and dumps the materialized token sequence of each. Pass - to read from stdin.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|classic|json)")
	tokenizeCmd.Flags().Bool("offsets", false, "print raw byte offsets instead of line:col positions")
	tokenizeCmd.Flags().Bool("no-cache", false, "bypass the token disk cache")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "classic", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	offsets, err := cmd.Flags().GetBool("offsets")
	if err != nil {
		return fmt.Errorf("failed to get offsets flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
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

	cache, err := openTokenCache(noCache)
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
		var result *driver.TokenizeResult
		if path == "-" {
			content, readErr := io.ReadAll(os.Stdin)
			if readErr != nil {
				return fmt.Errorf("failed to read stdin: %w", readErr)
			}
			result = driver.TokenizeSource(cmd.Context(), fs, "<stdin>", content, opts)
		} else {
			result, err = driver.Tokenize(cmd.Context(), fs, path, opts)
			if err != nil {
				return fmt.Errorf("tokenize failed: %w", err)
			}
		}

		if result.Bag.HasErrors() || result.Bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, result.Bag, fs, prettyOpts)
		}
		// A scan defect leaves no token sequence to dump.
		if result.Bag.HasErrors() {
			continue
		}

		if headers {
			fmt.Fprintf(os.Stdout, "== %s ==\n", result.File.Path)
		}
		switch format {
		case "pretty":
			err = diagfmt.TokensPretty(os.Stdout, result.File, result.Tokens, diagfmt.TokenOpts{Offsets: offsets})
		case "classic":
			err = diagfmt.TokensClassic(os.Stdout, result.File, result.Tokens)
		case "json":
			err = diagfmt.TokensJSON(os.Stdout, result.File, result.Tokens)
		}
		if err != nil {
			return err
		}
		if headers && idx < len(args)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}

	return emitTimings(cmd, timer)
}
