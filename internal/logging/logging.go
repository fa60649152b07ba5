// Package logging holds the process-wide logger. It defaults to a no-op so
// library consumers pay nothing unless a front end opts in.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Logger returns the current logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the process logger. Nil restores the no-op.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// EnableDevelopment switches to a human-readable development logger, used by
// the CLI's --verbose flag.
func EnableDevelopment() error {
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}
