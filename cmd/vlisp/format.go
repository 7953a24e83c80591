package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vlisp/internal/diagfmt"
	"vlisp/internal/driver"
	"vlisp/internal/observ"
	"vlisp/internal/source"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format VLisp source files",
	Long:  "Fmt renders VLisp source files in canonical form: one top-level form per line, single spaces inside lists.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("write", false, "rewrite files in place instead of printing to stdout")
	fmtCmd.Flags().Bool("check", false, "list files whose formatting differs and exit non-zero")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	if write && check {
		return fmt.Errorf("fmt: --write cannot be used with --check")
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

	fs := source.NewFileSet()
	timer := observ.NewTimer()
	results, err := driver.FormatPaths(cmd.Context(), fs, args, driver.FormatOptions{
		Check:          check,
		Write:          write,
		MaxDiagnostics: maxDiagnostics,
		Timer:          timer,
	})
	if err != nil {
		return err
	}

	prettyOpts := diagfmt.PrettyOpts{Color: useColor, ShowNotes: true}
	headers := !quiet && !write && !check && len(results) > 1

	var hasErrors, hasChanges bool
	for idx, res := range results {
		if res.Bag != nil && (res.Bag.HasErrors() || res.Bag.HasWarnings()) {
			diagfmt.Pretty(os.Stderr, res.Bag, fs, prettyOpts)
		}
		if res.Bag != nil && res.Bag.HasErrors() {
			hasErrors = true
			continue
		}
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		switch {
		case check:
			if res.Changed {
				hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
		case write:
			if res.Changed && !quiet {
				fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
			}
		default:
			if headers {
				fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
			}
			_, _ = os.Stdout.Write(res.Formatted)
			if headers && idx < len(results)-1 {
				fmt.Fprintln(os.Stdout)
			}
		}
	}

	if err := emitTimings(cmd, timer); err != nil {
		return err
	}
	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}
