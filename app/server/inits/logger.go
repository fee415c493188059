package inits

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const loggerName = "auth"

func Logger(debugMode bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l.Named(loggerName), nil
}
