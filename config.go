// Package newsum provides public APIs for the newsum summarizer.
//
// This package exposes minimal entry points for external use,
// such as serverless handlers, while keeping implementation details in internal packages.
package newsum

import (
	"context"

	"github.com/newsdigest/newsum/internal/config"
)

// Config is the configuration store for newsum.
// It provides access to all configuration values with layer-based resolution.
type Config = config.Store

// LoadConfig loads the configuration from all available sources.
// Sources are resolved in the following priority order:
//   - Command line arguments (highest)
//   - Environment variables (NEWSUM_*, NEWS_API_KEY)
//   - .newsum.yaml (project local)
//   - ~/.config/newsum/credentials.yaml (API key)
//   - ~/.config/newsum/config.yaml (user config)
//   - Defaults (lowest)
func LoadConfig(ctx context.Context) (*Config, error) {
	return config.Load(ctx)
}
