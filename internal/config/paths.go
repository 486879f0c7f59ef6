package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is the application name used for config directories
const AppName = "newsum"

// configDir returns the config directory path (~/.config/newsum)
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config
func configDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// configPath returns the user config file path (~/.config/newsum/config.yaml)
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// credentialsPath はクレデンシャルファイルのパスを返す
func credentialsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.yaml"), nil
}

// defaultCacheDir returns the default cache directory path
func defaultCacheDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, AppName), nil
}

// findProjectConfigPath はカレントディレクトリから上に向かって
// プロジェクト設定ファイルを検索する
func findProjectConfigPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range ProjectConfigFiles {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// ルートに到達、見つからず
			return "", nil
		}
		dir = parent
	}
}

// DotToPointer converts a dot-separated path to a JSON Pointer.
// Example: "news.api_key" -> "/news/api_key"
func DotToPointer(dotPath string) string {
	return "/" + strings.ReplaceAll(dotPath, ".", "/")
}

// PointerToDot converts a JSON Pointer to a dot-separated path.
func PointerToDot(pointer string) string {
	return strings.ReplaceAll(strings.TrimPrefix(pointer, "/"), "/", ".")
}
