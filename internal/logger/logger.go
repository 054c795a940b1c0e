package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init replaces zap's global logger. Use zap.L() everywhere else.
func Init(environment string) error {
	var conf zap.Config
	switch environment {
	case "development", "local", "test":
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		conf = zap.NewProductionConfig()
		conf.EncoderConfig.TimeKey = "time"
		conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l.With(zap.String("env", environment)))

	return nil
}
