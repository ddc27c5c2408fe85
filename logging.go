package main

import (
	"io"
	"log/slog"
	"os"
)

var persistentLogFile *os.File

// setupLogger initializes the structured logger
func setupLogger(cfg *Config) {
	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var out io.Writer = os.Stdout
	if cfg.Log.File != "" {
		logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			persistentLogFile = logFile
			out = io.MultiWriter(os.Stdout, logFile)
		}
	}

	handler := slog.NewTextHandler(out, opts)
	logger := slog.New(handler).With("app", "komibot")
	slog.SetDefault(logger)

	if cfg.Log.File != "" {
		if persistentLogFile != nil {
			slog.Info("Persistent logging enabled", "file", cfg.Log.File)
		} else {
			slog.Error("Persistent logging disabled: failed to open log file", "file", cfg.Log.File)
		}
	}
}

func closeLogger() {
	if persistentLogFile == nil {
		return
	}
	_ = persistentLogFile.Sync()
	_ = persistentLogFile.Close()
	persistentLogFile = nil
}
