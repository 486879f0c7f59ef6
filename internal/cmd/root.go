package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yacchi/jubako"

	cachecmd "github.com/newsdigest/newsum/internal/cmd/cache"
	configcmd "github.com/newsdigest/newsum/internal/cmd/config"
	"github.com/newsdigest/newsum/internal/cmd/headlines"
	"github.com/newsdigest/newsum/internal/cmd/read"
	"github.com/newsdigest/newsum/internal/cmd/serve"
	summarizecmd "github.com/newsdigest/newsum/internal/cmd/summarize"
	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/config"
	"github.com/newsdigest/newsum/internal/debug"
	"github.com/newsdigest/newsum/internal/ui"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "newsum",
	Short: "newsum - news headlines and extractive summaries in your terminal",
	Long: `newsum lists news headlines, downloads articles and summarizes them.

Summaries are extractive: the highest scoring sentences of the original text
are returned unchanged.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// デバッグモードの有効化
		if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
			debug.Enable()
		}

		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}

		// カラー設定
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			ui.SetColorEnabled(false)
		} else {
			ui.ApplyColorSetting(cfg.Display().Color)
		}

		// グローバルフラグを取得してArgsレイヤーに適用
		var setOptions []jubako.SetOption
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			setOptions = append(setOptions, jubako.String(config.PathDisplayOutput, output))
		}
		if len(setOptions) > 0 {
			return cfg.SetFlagsLayer(setOptions)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cmdutil.CloseModel()
	},
}

// Execute はルートコマンドを実行する
func Execute() error {
	defer func() { _ = cmdutil.CloseModel() }()
	return rootCmd.Execute()
}

func init() {
	// グローバルフラグ
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	// サブコマンド登録
	rootCmd.AddCommand(summarizecmd.SummarizeCmd)
	rootCmd.AddCommand(headlines.HeadlinesCmd)
	rootCmd.AddCommand(read.ReadCmd)
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(cachecmd.CacheCmd)
}
