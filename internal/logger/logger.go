// Package logger builds the zap loggers used by the CLI, the local server
// and the TUI.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/talenthub/internal/config"
)

// New builds a logger that writes to stderr. Production environments and
// the json format get zap's production encoder; everything else gets the
// colored development console.
func New(cfg *config.Config) (*zap.Logger, error) {
	zc := baseConfig(cfg)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return build(zc)
}

// NewTUI builds a logger for the terminal UI. The terminal belongs to the
// UI, so logs go to cfg.Log.File, or nowhere when it is unset.
func NewTUI(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.File == "" {
		return zap.NewNop(), nil
	}
	zc := baseConfig(cfg)
	zc.Encoding = "json"
	zc.EncoderConfig = zap.NewProductionEncoderConfig()
	zc.OutputPaths = []string{cfg.Log.File}
	zc.ErrorOutputPaths = []string{cfg.Log.File}
	return build(zc)
}

func baseConfig(cfg *config.Config) zap.Config {
	var zc zap.Config
	if cfg.Env == "production" || cfg.Log.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Log.Level))
	return zc
}

func build(zc zap.Config) (*zap.Logger, error) {
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// ParseLevel converts a level name to a zap level. Unknown names are info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
