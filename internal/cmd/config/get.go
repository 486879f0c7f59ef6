package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/config"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value.

Examples:
  newsum config get summary.algorithm
  newsum config get news.sources
  newsum config get server.port`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(c *cobra.Command, args []string) error {
	key := args[0]

	cfg, err := cmdutil.GetConfigStore(c)
	if err != nil {
		return err
	}

	value := cfg.Get(key)
	if value == nil {
		return fmt.Errorf("unknown config key: %s", key)
	}
	if config.IsSensitive(key) {
		value = config.SensitiveMaskString
	}

	fmt.Fprintln(c.OutOrStdout(), value)
	return nil
}
