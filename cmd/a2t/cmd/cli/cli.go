// Package cli holds the persistent flags and the start-up sequence shared by
// every a2t subcommand.
package cli

import (
	"fmt"

	"go.uber.org/zap"

	"audio2text/internal/app/logging"
	"audio2text/internal/config"
)

var (
	Verbose    bool
	ConfigPath string
)

// Bootstrap loads .env, builds the stderr logger and reads the settings
// file, in that order, so that .env can carry A2T_* overrides.
func Bootstrap() (*zap.Logger, *config.Settings, error) {
	envPath, err := config.LoadEnv()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewLogger(Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if envPath != "" {
		logger.Debug("loaded environment file", zap.String("path", envPath))
	}

	settings, err := config.LoadSettings(ConfigPath)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return logger, settings, nil
}
