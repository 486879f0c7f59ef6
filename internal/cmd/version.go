package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
)

// VersionInfo は version コマンドの構造化出力
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	RunE: func(c *cobra.Command, args []string) error {
		info := currentVersion()
		format := ""
		if cfg, err := cmdutil.GetConfigStore(c); err == nil {
			format = cfg.Display().Output
		}
		return cmdutil.Output(c.OutOrStdout(), info, cmdutil.OutputOptions{Format: format},
			func(w io.Writer) error {
				fmt.Fprintf(w, "newsum version %s\n", info.Version)
				fmt.Fprintf(w, "  commit: %s\n", info.Commit)
				fmt.Fprintf(w, "  built:  %s\n", info.BuildDate)
				_, err := fmt.Fprintf(w, "  go:     %s (%s)\n", info.GoVersion, info.Platform)
				return err
			})
	},
}

func currentVersion() VersionInfo {
	return VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
