package log

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/config"
)

type logrusAdapter struct {
	entry *logrus.Entry
}

// newLogger builds a logrus-backed Logger from config: console output
// always, plus a rotating file appender when enabled.
func newLogger(cfg config.LogConfig) (Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unsupported log format: %s (must be json or text)", cfg.Format)
	}

	mw := NewMultiWriter().Add(os.Stderr)
	if cfg.Outputs.File.Enabled {
		if cfg.Outputs.File.Path == "" {
			return nil, fmt.Errorf("file output requires 'path' field")
		}
		mw.AddFileAppender(FileAppenderOpt{
			Filename:   cfg.Outputs.File.Path,
			MaxSize:    cfg.Outputs.File.Rotation.MaxSizeMB,
			MaxBackups: cfg.Outputs.File.Rotation.MaxBackups,
			MaxAge:     cfg.Outputs.File.Rotation.MaxAgeDays,
			Compress:   cfg.Outputs.File.Rotation.Compress,
		})
	}
	l.SetOutput(mw)

	return &logrusAdapter{entry: logrus.NewEntry(l)}, nil
}

func newDefaultLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetOutput(os.Stderr)
	return &logrusAdapter{entry: logrus.NewEntry(l)}
}

func (l *logrusAdapter) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *logrusAdapter) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l *logrusAdapter) Info(args ...interface{})                 { l.entry.Info(args...) }
func (l *logrusAdapter) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *logrusAdapter) Warn(args ...interface{})                 { l.entry.Warn(args...) }
func (l *logrusAdapter) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *logrusAdapter) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *logrusAdapter) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *logrusAdapter) WithField(field string, value interface{}) Logger {
	return &logrusAdapter{entry: l.entry.WithField(field, value)}
}
func (l *logrusAdapter) WithFields(fields map[string]interface{}) Logger {
	return &logrusAdapter{entry: l.entry.WithFields(fields)}
}
func (l *logrusAdapter) WithError(err error) Logger {
	return &logrusAdapter{entry: l.entry.WithError(err)}
}

func (l *logrusAdapter) IsDebugEnabled() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}
