package logger

import (
	"os"
	"sync"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/xdg"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// L returns the process logger, or nil before initialization.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger installs l as the process logger, the zap global, and the
// otelzap global used by otelzap.Ctx.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()

	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// GetLogger returns the process logger, initializing a console fallback on first use.
func GetLogger() *zap.Logger {
	if l := L(); l != nil {
		return l
	}
	InitFallback()
	return L()
}

// InitFallback installs a console-only logger.
func InitFallback() {
	SetLogger(NewFallbackLogger())
}

// EnsureLogPermissions ensures the log directory is owner-only and the file is 0600.
func EnsureLogPermissions(logFilePath string) error {
	if err := xdg.EnsureDir(logFilePath); err != nil {
		return err
	}

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY, shared.SecretFilePerm)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	return os.Chmod(logFilePath, shared.SecretFilePerm)
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	l := L()
	if l == nil {
		return nil
	}
	return l.Sync()
}
