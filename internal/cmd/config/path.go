package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file paths",
	RunE:  runPath,
}

func runPath(cmd *cobra.Command, _ []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// ユーザー設定ファイル
	fmt.Fprintf(out, "Config:      %s\n", cfg.GetUserConfigPath())

	// クレデンシャルファイル
	fmt.Fprintf(out, "Credentials: %s\n", cfg.GetCredentialsPath())

	// プロジェクトローカル設定
	if projectPath := cfg.GetProjectConfigPath(); projectPath != "" {
		fmt.Fprintf(out, "Project:     %s\n", projectPath)
	}

	// キャッシュディレクトリ
	if cacheDir, err := cfg.Cache().GetCacheDir(); err == nil {
		fmt.Fprintf(out, "Cache:       %s\n", cacheDir)
	}

	return nil
}
