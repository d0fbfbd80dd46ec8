package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "vi-racer.log"
	maxLogSize  = 10 * 1024 * 1024
)

// parseLevel maps a config level name to zerolog, defaulting to info
func parseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// setupLogging opens logs/vi-racer.log when debug is set, rotating a file over maxLogSize
// Without debug the logger is a no-op: the terminal belongs to the renderer
func setupLogging(debug bool, level string) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.Nop(), nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "log directory: %v\n", err)
		return zerolog.Nop(), nil
	}

	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("vi-racer-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation: %v\n", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		return zerolog.Nop(), nil
	}

	w := zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true}
	logger := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	return logger, file
}
