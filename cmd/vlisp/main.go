// Package main implements the vlisp CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vlisp/internal/driver"
	"vlisp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "vlisp",
	Short: "VLisp reader and diagnostic toolchain",
	Long:  `vlisp reads VLisp source files: it scans them into tokens, builds syntax trees, and reports defects with caret diagnostics`,
}

// main registers the subcommands and persistent flags, then executes the
// root command. A failed command exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	rootCmd.PersistentFlags().Bool("timings-json", false, "print phase timings as JSON to stderr")
	rootCmd.PersistentFlags().Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|phases|detail)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers for multi-file commands (0=auto)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to the given file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
