package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache [flags]",
	Short: "Show or clear the token disk cache",
	Long:  "Cache prints the token disk cache location and contents; --clean removes every cached entry.",
	Args:  cobra.NoArgs,
	RunE:  runCache,
}

func init() {
	cacheCmd.Flags().Bool("clean", false, "remove all cached token sequences")
}

func runCache(cmd *cobra.Command, _ []string) error {
	clean, err := cmd.Flags().GetBool("clean")
	if err != nil {
		return fmt.Errorf("failed to get clean flag: %w", err)
	}

	cache, err := openTokenCache(false)
	if err != nil {
		return err
	}
	if cache == nil {
		fmt.Fprintln(os.Stdout, "token cache is disabled")
		return nil
	}

	if clean {
		if err := cache.Clean(); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
		fmt.Fprintf(os.Stdout, "cleaned %s\n", cache.Dir())
		return nil
	}

	entries, size, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}
	fmt.Fprintf(os.Stdout, "%s\n", cache.Dir())
	fmt.Fprintf(os.Stdout, "%d entries, %s\n", entries, humanize.IBytes(uint64(size)))
	return nil
}
