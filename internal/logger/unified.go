package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Channel names the audience of a log entry. The routing hook picks the
// writer and formatter from it.
type Channel string

const (
	UserLog Channel = "user"
	OpLog   Channel = "op"
)

// UnifiedLogger owns the logrus logger behind both channels
type UnifiedLogger struct {
	mu     sync.RWMutex
	logger *logrus.Logger
}

var (
	unifiedLog *UnifiedLogger
	once       sync.Once
)

// GetLogger returns the global logger instance, initializing it if necessary
func GetLogger() *UnifiedLogger {
	once.Do(func() {
		logger := logrus.New()
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&CLIFormatter{
			DisableTimestamp: true,
			DisableLevel:     true,
			DisableColors:    true,
		})
		unifiedLog = &UnifiedLogger{logger: logger}
	})
	return unifiedLog
}

// On returns an entry tagged for channel carrying fields.
func (l *UnifiedLogger) On(channel Channel, fields logrus.Fields) *logrus.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	data := make(logrus.Fields, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data[logTypeField] = string(channel)
	return l.logger.WithFields(data)
}

// Level returns the current log level.
func (l *UnifiedLogger) Level() logrus.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger.GetLevel()
}

// Configure sets output, level and formatter, and replaces every hook with hooks.
func (l *UnifiedLogger) Configure(output io.Writer, level logrus.Level, formatter logrus.Formatter, hooks ...logrus.Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.SetOutput(output)
	l.logger.SetLevel(level)
	l.logger.SetFormatter(formatter)

	levelHooks := make(logrus.LevelHooks)
	for _, hook := range hooks {
		levelHooks.Add(hook)
	}
	l.logger.ReplaceHooks(levelHooks)
}
