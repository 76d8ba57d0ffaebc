package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skycast-app/skycast/internal/config"
)

// New builds a zap logger from the logging config. Unknown levels fall
// back to info; the "console" format switches to the development
// encoder.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.OutputPath != "" {
		zapCfg.OutputPaths = []string{cfg.OutputPath}
	}

	return zapCfg.Build()
}

func NewDevelopment() *zap.Logger {
	l, _ := zap.NewDevelopment()
	return l
}

func NewProduction() *zap.Logger {
	l, _ := zap.NewProduction()
	return l
}
