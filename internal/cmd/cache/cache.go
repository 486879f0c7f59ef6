package cache

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cache"
	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/ui"
)

var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the headline and article cache",
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached headlines and articles",
	RunE:  runClear,
}

var pruneMaxAge time.Duration

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired cache entries",
	RunE:  runPrune,
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneMaxAge, "max-age", 24*time.Hour, "Also delete entries not updated within this duration")

	CacheCmd.AddCommand(clearCmd)
	CacheCmd.AddCommand(pruneCmd)
}

func fileCache(cmd *cobra.Command) (*cache.FileCache, error) {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return nil, err
	}
	dir, err := cfg.Cache().GetCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

func runClear(cmd *cobra.Command, _ []string) error {
	fc, err := fileCache(cmd)
	if err != nil {
		return err
	}
	if err := fc.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	ui.Success("Cleared cache: %s", fc.Dir())
	return nil
}

func runPrune(cmd *cobra.Command, _ []string) error {
	fc, err := fileCache(cmd)
	if err != nil {
		return err
	}
	if err := fc.Cleanup(cmd.Context(), pruneMaxAge); err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	ui.Success("Pruned expired cache entries in %s", fc.Dir())
	return nil
}
