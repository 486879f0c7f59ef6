package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/config"
	"github.com/newsdigest/newsum/internal/ui"
)

var setProject bool

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

By default, saves to user config (~/.config/newsum/config.yaml).
Use --project to save to project config (.newsum.yaml).
Comma separated values are stored as lists.

Examples:
  newsum config set summary.algorithm lexrank
  newsum config set summary.ratio 0.3
  newsum config set news.feeds https://example.com/rss,https://example.org/atom
  newsum config set --project news.provider feeds`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVarP(&setProject, "project", "p", false, "Save to project config (.newsum.yaml)")
}

func runSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if config.IsSensitive(key) {
		return fmt.Errorf("%s is stored in the credentials file; use 'newsum config set-key'", key)
	}
	value := cmdutil.ParseConfigValue(args[1])

	ctx := cmd.Context()
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	// 書き込み先の決定と保存
	if setProject {
		ui.Info("Writing to project config: %s", cfg.GetProjectConfigPath())
		err = cfg.SetToLayer(config.LayerProject, key, value)
	} else {
		err = cfg.Set(key, value)
	}
	if err != nil {
		return err
	}

	if err := cfg.Save(ctx); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	ui.Success("Set %s = %v", key, value)
	return nil
}
