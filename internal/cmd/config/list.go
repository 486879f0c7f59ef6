package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/config"
)

var listAllFlag bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values",
	Long: `List configuration values.

By default, shows only modified values (non-default).
Use --all to show all configuration values including defaults.
The NewsAPI key is always masked.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listAllFlag, "all", "a", false, "Show all configuration values including defaults")
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// 設定ファイルのパスを表示
	if userPath := cfg.GetUserConfigPath(); userPath != "" {
		fmt.Fprintf(out, "# User config: %s\n", userPath)
	}
	if credPath := cfg.GetCredentialsPath(); credPath != "" {
		fmt.Fprintf(out, "# Credentials: %s\n", credPath)
	}
	if projectPath := cfg.GetProjectConfigPath(); projectPath != "" {
		fmt.Fprintf(out, "# Project config: %s\n", projectPath)
	}

	type entry struct {
		path         string
		value        string
		layer        string
		defaultValue string
	}
	var entries []entry
	maxWidth := 0

	cfg.Walk(func(e config.WalkEntry) bool {
		// --all でない場合、defaults レイヤーの値はスキップ
		if !listAllFlag && e.Layer == config.LayerDefaults {
			return true
		}
		valueStr := fmt.Sprintf("%v", e.Value)
		if line := len(e.Path) + 1 + len(valueStr); line > maxWidth {
			maxWidth = line
		}
		defaultStr := ""
		if e.DefaultValue != nil {
			defaultStr = fmt.Sprintf("%v", e.DefaultValue)
		}
		entries = append(entries, entry{
			path:         e.Path,
			value:        valueStr,
			layer:        e.Layer,
			defaultValue: defaultStr,
		})
		return true
	})

	// 縦位置を揃えて出力
	for _, e := range entries {
		line := fmt.Sprintf("%s=%s", e.path, e.value)
		comment := e.layer
		if e.defaultValue != "" && e.value != e.defaultValue {
			comment = fmt.Sprintf("%s, default: %s", e.layer, e.defaultValue)
		}
		fmt.Fprintf(out, "%-*s  # %s\n", maxWidth, line, comment)
	}

	if len(entries) == 0 {
		if listAllFlag {
			fmt.Fprintln(out, "No configuration values found.")
		} else {
			fmt.Fprintln(out, "No modified configuration values.")
			fmt.Fprintln(out, "Use --all to show all configuration values including defaults.")
		}
	}

	return nil
}
