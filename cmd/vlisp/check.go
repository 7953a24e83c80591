package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vlisp/internal/diagfmt"
	"vlisp/internal/pipeline"
	"vlisp/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Check VLisp files for reader defects",
	Long:  "Check scans and builds every .vl file under the given paths, reports defects, and exits non-zero when any file fails.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("ui", "auto", "progress user interface (auto|on|off)")
	checkCmd.Flags().Bool("round-trip", false, "verify that the canonical form of each clean tree reads back identically")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	roundTrip, err := cmd.Flags().GetBool("round-trip")
	if err != nil {
		return fmt.Errorf("failed to get round-trip flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
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

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cache, err := openTokenCache(false)
	if err != nil {
		return err
	}

	req := pipeline.CheckRequest{
		Paths:          args,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		RoundTrip:      roundTrip,
		Cache:          cache,
	}

	// Expand the paths up front so the progress screen can seed its file
	// list. A listing failure falls through to the pipeline, which
	// reports it as the run error.
	files, listErr := project.ListSources(args)
	useTUI := shouldUseTUI(uiModeValue) && listErr == nil && len(files) > 0

	var res *pipeline.CheckResult
	if useTUI {
		res, err = runCheckWithUI(cmd.Context(), "vlisp check", files, &req)
	} else {
		res, err = pipeline.Check(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	prettyOpts := diagfmt.PrettyOpts{Color: useColor, ShowNotes: true}
	for i := range res.Files {
		fc := &res.Files[i]
		if fc.Bag.HasErrors() || fc.Bag.HasWarnings() {
			fc.Bag.Sort()
			diagfmt.Pretty(os.Stderr, fc.Bag, res.FileSet, prettyOpts)
		}
		if fc.VerifyMsg != "" {
			fmt.Fprintf(os.Stderr, "%s: round-trip verification failed: %s\n", fc.Path, fc.VerifyMsg)
		}
	}

	failed := res.Failed()
	if !quiet {
		printStageTimings(os.Stdout, res.Timings)
		fmt.Fprintf(os.Stdout, "checked %d file(s): %d ok, %d failed\n", len(res.Files), len(res.Files)-failed, failed)
	}
	if err := emitTimings(cmd, res.Timer); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("check: %d of %d file(s) failed", failed, len(res.Files))
	}
	return nil
}
