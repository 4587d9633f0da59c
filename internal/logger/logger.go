package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type implLogger struct {
	entry *logrus.Entry
}

// Options configures the logrus backend.
type Options struct {
	Level string
	// Format is "text" (default) or "json".
	Format string
	Output io.Writer
}

// New creates a new Logger instance writing text to stdout
func New(level string) Logger {
	return NewWithOptions(Options{Level: level})
}

// NewNop discards everything; handy in tests.
func NewNop() Logger {
	return NewWithOptions(Options{Level: "error", Output: io.Discard})
}

// NewWithOptions builds a logrus-backed Logger.
func NewWithOptions(opts Options) Logger {
	base := logrus.New()

	if strings.ToLower(opts.Format) == "json" {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	if opts.Output != nil {
		base.SetOutput(opts.Output)
	} else {
		base.SetOutput(os.Stdout)
	}

	base.SetLevel(parseLevel(strings.ToLower(opts.Level)))

	return &implLogger{entry: logrus.NewEntry(base)}
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Errorf(msg, args...)
}

func (l *implLogger) With(fields map[string]interface{}) Logger {
	return &implLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}
