package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	cfg       Config
	// logFile is the sink shared by every logger of the current config.
	logFile *os.File
)

// Configure sets the configuration used by loggers created afterwards and
// drops the cached ones so they pick it up. The previous log file is closed.
func Configure(c Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	cfg = c
	loggers = make(map[string]*logrus.Entry)
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// openLogFile returns the shared file sink, opening it on first use.
// Callers hold loggersMu.
func openLogFile(logger *logrus.Logger) *os.File {
	if logFile != nil {
		return logFile
	}
	path := expandPath(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Warnf("Failed to create log directory %s: %v", filepath.Dir(path), err)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.Warnf("Failed to open log file %s: %v", path, err)
		return nil
	}
	logFile = f
	return f
}

// NewLogger returns the logger for a component. One logger is built per
// component and reused.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("PLAYCORE_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		if interactive {
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		} else {
			logger.SetFormatter(&logrus.JSONFormatter{})
		}
	}

	var writers []io.Writer

	if cfg.File != "" {
		if f := openLogFile(logger); f != nil {
			writers = append(writers, f)
		}
	}

	toStderr := false
	switch cfg.Stderr {
	case "always":
		toStderr = true
	case "never":
	default:
		toStderr = !interactive || level >= logrus.DebugLevel
	}
	if toStderr {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
