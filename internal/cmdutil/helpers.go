package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/config"
)

// GetConfigStore はConfigStoreを取得する
// グローバルフラグはrootCmd.PersistentPreRunEで適用済み
func GetConfigStore(cmd *cobra.Command) (*config.Store, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// ReadInput は引数のファイル、"-"、または標準入力からテキストを読み込む
func ReadInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// ParseConfigValue はCLIから渡された文字列を設定値に変換する
// true/false は bool、カンマを含む値はリストとして扱う
func ParseConfigValue(value string) any {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.Contains(value, ",") {
		var items []any
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	return value
}
