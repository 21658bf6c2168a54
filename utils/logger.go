package utils

import (
	"fmt"
	"log"

	"greengarden/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.Logger

// LoggerConfig returns the zap configuration for the given environment. A
// non-empty level overrides the environment default.
func LoggerConfig(production bool, level string) (zap.Config, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if production {
		cfg = zap.NewProductionConfig()
	}

	if level == "" {
		return cfg, nil
	}
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return cfg, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg.Level = parsed
	return cfg, nil
}

// InitializeLogger builds the global logger and installs it as zap.L().
func InitializeLogger() {
	cfg, err := LoggerConfig(config.IsProduction(), config.AppConfig.LogLevel)
	if err != nil {
		log.Printf("Falling back to default log level: %v", err)
	}

	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(Logger)
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
