/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewFallbackLogger() *zap.Logger {
	return NewConsoleLogger(os.Stdout, os.Stderr, ParseLogLevel(os.Getenv("LOG_LEVEL")))
}

// NewConsoleLogger writes log entries to logs and "terminal prompt:" output to out.
func NewConsoleLogger(out, logs io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(logs)),
		level,
	)

	return zap.New(newTerminalConsoleCore(core, out), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback tees console output with a JSON file core at the
// first writable log path, or logs to the console only if none is writable.
func InitializeWithFallback() {
	level := ParseLogLevel(os.Getenv("LOG_LEVEL"))

	path, err := FindWritableLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  No writable log path found. Logging to console only.")
		InitFallback()
		return
	}

	writer, err := GetLogFileWriter(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Could not write to log file, logging to console only:", err)
		InitFallback()
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, level),
	)

	SetLogger(zap.New(newTerminalConsoleCore(core, os.Stdout), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	L().Debug("Logger initialized",
		zap.String("log_level", level.String()),
		zap.String("log_path", path),
	)
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
