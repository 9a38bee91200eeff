// Package log provides the process-wide structured logger.
package log

import (
	"sync"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/config"
)

// Logger is the logging interface used throughout the agent. Library
// packages under pkg/ never log; only the agent side does.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsDebugEnabled() bool
}

var (
	once   sync.Once
	mu     sync.RWMutex
	logger Logger
)

// GetLogger returns the process logger. Before Init runs it returns a
// console logger at info level, so tests and early startup never nil-panic.
func GetLogger() Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = newDefaultLogger()
	}
	return logger
}

// Init configures the process logger from config. Only the first call has
// an effect.
func Init(cfg config.LogConfig) error {
	var err error
	once.Do(func() {
		var l Logger
		l, err = newLogger(cfg)
		if err != nil {
			return
		}
		mu.Lock()
		logger = l
		mu.Unlock()
	})
	return err
}
