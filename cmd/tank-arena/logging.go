package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const logFileName = "tank-arena.log"

// setupLogging writes human-readable logs to a file under logsDir
// The terminal belongs to the renderer, so nothing is written to stdout
// debug overrides the configured level
func setupLogging(logsDir, level string, debug bool) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if debug {
		lvl = zerolog.DebugLevel
	}

	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(logsDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	writer := zerolog.ConsoleWriter{
		Out:        logFile,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
	return logger, logFile, nil
}
