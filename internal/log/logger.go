// Package log wraps logrus behind a small Logger interface so the rest of
// the code never imports the logging backend directly.
package log

import (
	"fmt"
	"sync"
)

// Config controls the global logger.
type Config struct {
	Level  string     `mapstructure:"level"`  // trace|debug|info|warn|error
	Format string     `mapstructure:"format"` // text|json
	File   FileConfig `mapstructure:"file"`
}

// FileConfig enables rotated file output in addition to stderr.
type FileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Logger is the logging surface used across the project.
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
	WithError(err error) Logger
}

var (
	mu     sync.RWMutex
	logger Logger = newLogrusLogger()
)

// GetLogger returns the global logger. Safe to call before Init; the
// default logger writes text to stderr at info level.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init configures the global logger from cfg.
func Init(cfg Config) error {
	l, err := configure(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}
