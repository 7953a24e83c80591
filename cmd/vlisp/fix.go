package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vlisp/internal/diag"
	"vlisp/internal/driver"
	"vlisp/internal/fix"
	"vlisp/internal/project"
	"vlisp/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <path> [path...]",
	Short: "Apply available fixes to VLisp source files",
	Long:  "Fix runs the reader over the given files, surfaces the fixes their diagnostics carry, and applies them according to --apply.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("apply", "once", "selection strategy (all|once|id:<ID>)")
	fixCmd.Flags().Bool("no-backup", false, "do not write .bak copies next to changed files")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without touching the disk")
}

func runFix(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	applyValue, err := cmd.Flags().GetString("apply")
	if err != nil {
		return fmt.Errorf("failed to get apply flag: %w", err)
	}
	noBackup, err := cmd.Flags().GetBool("no-backup")
	if err != nil {
		return fmt.Errorf("failed to get no-backup flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	opts := fix.ApplyOptions{DryRun: dryRun, NoBackup: noBackup}
	switch {
	case applyValue == "" || applyValue == "once":
		opts.Mode = fix.ApplyModeOnce
	case applyValue == "all":
		opts.Mode = fix.ApplyModeAll
	case strings.HasPrefix(applyValue, "id:"):
		opts.Mode = fix.ApplyModeID
		opts.TargetID = strings.TrimPrefix(applyValue, "id:")
		if opts.TargetID == "" {
			return fmt.Errorf("invalid --apply value %q (missing fix id)", applyValue)
		}
	default:
		return fmt.Errorf("invalid --apply value %q (expected all, once, or id:<ID>)", applyValue)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	files, err := project.ListSources(args)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// A fix id is only unique within one file's diagnostics.
	if opts.Mode == fix.ApplyModeID && len(files) > 1 {
		return fmt.Errorf("fix: id can only be used with a single file")
	}

	fs := source.NewFileSet()
	driverOpts := driver.Options{MaxDiagnostics: maxDiagnostics}
	var diagnostics []diag.Diagnostic
	for _, path := range files {
		result, parseErr := driver.Parse(cmd.Context(), fs, path, driverOpts)
		if parseErr != nil {
			return fmt.Errorf("fix: %w", parseErr)
		}
		result.Bag.Sort()
		diagnostics = append(diagnostics, result.Bag.Items()...)
	}

	res, applyErr := fix.Apply(fs, diagnostics, opts)
	return handleApplyResult(res, applyErr)
}

func handleApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if res.DryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(os.Stdout, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.Path
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] - %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		header := "Updated files:"
		if res.DryRun {
			header = "Files that would change:"
		}
		fmt.Fprintln(os.Stdout, header)
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
