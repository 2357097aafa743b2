package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFilePathLogger logs to both stderr/stdout and a file, which is useful
// for long dataset runs that outlive a terminal session.
func NewFilePathLogger(filepath, name string) (*zap.SugaredLogger, error) {
	logger, err := zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{filepath, "stdout"},
		ErrorOutputPaths:  []string{filepath, "stderr"},
	}.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar().Named(name), nil
}
