package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger provides leveled, printf-style logging throughout the application.
// Output goes to stderr so the report on stdout stays clean.
type Logger struct {
	log *logrus.Logger
}

// NewLogger creates a Logger writing to stderr at info level.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr)
}

// NewLoggerTo creates a Logger writing to w.
func NewLoggerTo(w io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{log: l}
}

// SetLevel changes the minimum level. Unknown names leave the level unchanged
// and return the parse error.
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.log.SetLevel(lvl)
	return nil
}

func (l *Logger) Info(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.log.Debugf(format, args...)
}
