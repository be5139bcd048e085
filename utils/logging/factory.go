// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/exp/maps"
)

var (
	_ Factory = (*factory)(nil)
	_ Factory = NoFactory{}
)

// Factory creates new instances of different types of Logger
type Factory interface {
	// Make creates a new logger with name [name]
	Make(name string) (Logger, error)

	// SetLogLevel sets the log level of the logger with name [name]
	SetLogLevel(name string, level Level) error

	// GetLoggerNames returns the names of all logs created by this factory
	GetLoggerNames() []string

	// Close stops and clears all of a Factory's instantiated loggers
	Close()
}

// factory implements the Factory interface
type factory struct {
	config Config
	lock   sync.RWMutex

	// For each logger created by this factory:
	// Logger name --> the logger.
	loggers map[string]Logger
}

// NewFactory returns a new instance of a Factory producing loggers configured
// with the values set in the [config] parameter
func NewFactory(config Config) Factory {
	return &factory{
		config:  config,
		loggers: make(map[string]Logger),
	}
}

// Assumes [f.lock] is held
func (f *factory) makeLogger(config Config) (Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", config.LoggerName)
	}

	prefix := config.LogFormat.WrapPrefix(config.MsgPrefix)
	consoleCore := NewWrappedCore(config.LogLevel, console{}, config.LogFormat.ConsoleEncoder())

	l := NewLogger(prefix, consoleCore)
	f.loggers[config.LoggerName] = l
	return l, nil
}

func (f *factory) Make(name string) (Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	if config.MsgPrefix == "" {
		config.MsgPrefix = name
	}
	return f.makeLogger(config)
}

func (f *factory) SetLogLevel(name string, level Level) error {
	f.lock.RLock()
	defer f.lock.RUnlock()

	logger, ok := f.loggers[name]
	if !ok {
		return fmt.Errorf("logger with name %q not found", name)
	}
	logger.SetLevel(level)
	return nil
}

func (f *factory) GetLoggerNames() []string {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return maps.Keys(f.loggers)
}

func (f *factory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, logger := range f.loggers {
		logger.Stop()
	}
	f.loggers = nil
}

// console is a stderr sink whose Close is a no-op, keeping the process
// stream usable after the factory shuts down.
type console struct{}

func (console) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

func (console) Close() error { return nil }

// NoFactory always returns NoLog loggers.
type NoFactory struct{}

func (NoFactory) Make(string) (Logger, error) { return NoLog{}, nil }

func (NoFactory) SetLogLevel(string, Level) error { return nil }

func (NoFactory) GetLoggerNames() []string { return nil }

func (NoFactory) Close() {}
