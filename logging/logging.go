package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/indieinfra/mockmedia/config"
)

// Logger is the subset of a leveled logger the stores depend on, so callers
// can substitute their own (logrus.Logger and logrus.Entry both satisfy it).
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// New builds a logrus logger from the log configuration. Debug forces the
// debug level. When a log file is configured output goes to a lumberjack
// rotating file, otherwise to stderr.
func New(cfg config.Log, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if cfg.File == "" {
		logger.SetOutput(os.Stderr)
		return logger
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		logger.SetOutput(os.Stderr)
		logger.Errorf("failed to create log directory, logging to stderr: %v", err)
		return logger
	}

	logger.SetOutput(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	})

	return logger
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
