package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/ui"
)

var (
	keyFromStdin bool
	deleteKey    bool
)

var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the NewsAPI key in the credentials file",
	Long: `Store the NewsAPI key in the credentials file (mode 0600).

The key is prompted for without echo. Use --stdin to read it from a pipe.
NEWS_API_KEY and NEWSUM_NEWS_API_KEY take precedence over the stored key.`,
	Args: cobra.NoArgs,
	RunE: runSetKey,
}

func init() {
	setKeyCmd.Flags().BoolVar(&keyFromStdin, "stdin", false, "Read the key from standard input")
	setKeyCmd.Flags().BoolVar(&deleteKey, "delete", false, "Remove the stored key")
	setKeyCmd.MarkFlagsMutuallyExclusive("stdin", "delete")
}

func runSetKey(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	if deleteKey {
		if err := cfg.DeleteAPIKey(); err != nil {
			return err
		}
		if err := cfg.Save(ctx); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
		ui.Success("Removed NewsAPI key from %s", cfg.GetCredentialsPath())
		return nil
	}

	var key string
	if keyFromStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key = strings.TrimSpace(string(data))
	} else {
		if !ui.IsInteractive() {
			return fmt.Errorf("no terminal available; use --stdin")
		}
		key, err = ui.Password("NewsAPI key:")
		if err != nil {
			return err
		}
		key = strings.TrimSpace(key)
	}
	if key == "" {
		return fmt.Errorf("empty API key")
	}

	if err := cfg.SetAPIKey(key); err != nil {
		return err
	}
	if err := cfg.Save(ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	ui.Success("Saved NewsAPI key to %s", cfg.GetCredentialsPath())
	return nil
}
