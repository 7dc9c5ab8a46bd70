// Shared helpers for the taskboard commands: config resolution, logger
// construction, and board backend wiring.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskboard/internal/memory"
	"taskboard/internal/paths"
	"taskboard/internal/sqlite"
	"taskboard/pkg/types"
)

// openBoard resolves configuration, builds the logger, and returns an
// opened board backend. The caller owns Close on both returns.
func openBoard() (types.Board, *zap.Logger, error) {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}

	cfg := configFromViper(v)
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := buildLogger(configDir, flagDebug || v.GetBool(cfgKeyDebug))
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	var board types.Board
	switch cfg.Backend {
	case types.BackendSQLite:
		board = sqlite.NewBackend(logger)
	default:
		board = memory.NewBackend(logger)
	}

	if err := board.Open(cfg); err != nil {
		return nil, nil, fmt.Errorf("open board: %w", err)
	}

	return board, logger, nil
}

// configFromViper maps the loaded viper keys onto a board config.
func configFromViper(v *viper.Viper) types.Config {
	return types.Config{
		Backend:      v.GetString(cfgKeyBackend),
		HistoryLimit: v.GetInt(cfgKeyHistoryLimit),
	}
}

// buildLogger returns a production zap logger writing under the config
// directory when debug is on, and a no-op logger otherwise. The TUI owns
// the terminal, so logs never go to stderr.
func buildLogger(configDir string, debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	logDir := paths.LogDir(configDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.OutputPaths = []string{filepath.Join(logDir, "taskboard.log")}
	config.ErrorOutputPaths = config.OutputPaths

	return config.Build()
}
