// Package logger provides component-scoped structured logging for the client
// runtime. It wraps logrus so call sites can chain contextual fields without
// carrying the logrus API around.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is a structured logger bound to a component name.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger writing to out at the given level.
func New(component string, out io.Writer, level logrus.Level) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return &Logger{entry: base.WithField("component", component)}
}

// NewDefault creates a logger for the component with level taken from the
// LOG_LEVEL environment variable (info when unset or unrecognised).
func NewDefault(component string) *Logger {
	level := logrus.InfoLevel
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return New(component, os.Stderr, level)
}

// WithField returns a logger with an additional contextual field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithError returns a logger with the error attached as a field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(args ...any) { l.entry.Debug(args...) }
func (l *Logger) Info(args ...any)  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...any) { l.entry.Error(args...) }

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
