package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vlisp/internal/observ"
	"vlisp/internal/pipeline"
)

// emitTimings writes the timer report to stderr when --timings or
// --timings-json asked for one. --timings-json wins when both are set.
func emitTimings(cmd *cobra.Command, timer *observ.Timer) error {
	if timer == nil {
		return nil
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	showJSON, err := cmd.Root().PersistentFlags().GetBool("timings-json")
	if err != nil {
		return fmt.Errorf("failed to get timings-json flag: %w", err)
	}
	if showJSON {
		return timer.WriteJSON(os.Stderr)
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}

// printStageTimings renders the per-stage wall clock of a check run.
func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	if timings.Has(pipeline.StageScan) {
		fmt.Fprintf(out, "scanned %.1f ms\n", toMillis(timings.Duration(pipeline.StageScan)))
	}
	if timings.Has(pipeline.StageBuild) {
		fmt.Fprintf(out, "built %.1f ms\n", toMillis(timings.Duration(pipeline.StageBuild)))
	}
	if timings.Has(pipeline.StageVerify) {
		fmt.Fprintf(out, "verified %.1f ms\n", toMillis(timings.Duration(pipeline.StageVerify)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
