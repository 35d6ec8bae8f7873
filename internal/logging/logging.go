package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for the given level. An empty level falls back to
// LOG_LEVEL. "debug" selects the development encoder. Standard library
// log output is redirected into the returned logger.
func New(level string) *zap.Logger {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	level = strings.ToLower(strings.TrimSpace(level))

	var config zap.Config
	if level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	}

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	_ = zap.RedirectStdLog(logger)
	return logger
}

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}

// NewConsole builds a human-readable logger writing to out, for use
// alongside an interactive prompt.
func NewConsole(level string, out io.Writer) *zap.Logger {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(out), parseLevel(strings.ToLower(strings.TrimSpace(level))))
	return zap.New(core)
}
