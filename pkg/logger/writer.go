// pkg/logger/writer.go

package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
)

// GetLogFileWriter tries to create a file writer at the specified path.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := EnsureLogPermissions(path); err != nil {
		return nil, fmt.Errorf("log permission error: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.Lock(file), nil
}

// FindWritableLogPath returns the first usable log path using XDG state locations.
func FindWritableLogPath() (string, error) {
	return findWritable(DefaultLogPaths())
}

func findWritable(paths []string) (string, error) {
	for _, path := range paths {
		if err := EnsureLogPermissions(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no writable log path found")
}
