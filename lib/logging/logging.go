package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggingArgs struct {
	Dev      bool   `arg:"--dev,env:FWJS_DEV" default:"false" json:"dev,omitempty"`
	LogLevel string `arg:"--log-level,env:FWJS_LOG_LEVEL" default:"info" json:"log_level,omitempty"`
}

// Build creates the process logger and installs it as the zap global.
func (args LoggingArgs) Build() (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if args.Dev {
		logger, err = zap.NewDevelopment()
	} else {
		var level zapcore.Level
		if lerr := level.UnmarshalText([]byte(args.LogLevel)); lerr != nil {
			return nil, fmt.Errorf("invalid log level '%s': %w", args.LogLevel, lerr)
		}
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		logger, err = config.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to construct logger: %v", err)
	}
	_ = zap.ReplaceGlobals(logger)
	return logger, nil
}
