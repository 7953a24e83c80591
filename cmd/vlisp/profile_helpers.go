package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vlisp/internal/prof"
)

// setupProfiling reads the persistent profiling flags and starts the
// requested runtime profilers. The returned stop function is safe to
// call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	cpuPath, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memPath, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	cfg := prof.Config{CPUPath: cpuPath, MemPath: memPath, TracePath: tracePath}
	if !cfg.Enabled() {
		return func() {}, nil
	}
	return prof.Start(cfg)
}
