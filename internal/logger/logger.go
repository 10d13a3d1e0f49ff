package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

const (
	logTypeField = "log_type"
	statusField  = "status"
)

// Environment variables that override the command-line logging flags.
const (
	EnvLogMode   = "TAKUS_LOG_MODE"
	EnvLogFormat = "TAKUS_LOG_FORMAT"
)

var (
	User *UserLogger // Clean messages for users (stdout)
	Op   *OpLogger   // Detailed operational logs (stderr)

	router *OutputRouterHook

	// resolved by Setup, flags and environment combined
	quietMode bool
	jsonMode  bool
)

// init ensures loggers are never nil
func init() {
	User = &UserLogger{base: GetLogger()}
	Op = &OpLogger{base: GetLogger()}
}

type UserLogger struct {
	base *UnifiedLogger
}

type OpLogger struct {
	base *UnifiedLogger
}

func (u *UserLogger) entry(status string) *logrus.Entry {
	var fields logrus.Fields
	if status != "" {
		fields = logrus.Fields{statusField: status}
	}
	return u.base.On(UserLog, fields)
}

func (u *UserLogger) Infof(format string, args ...interface{}) {
	u.entry("").Infof(format, args...)
}

func (u *UserLogger) Errorf(format string, args ...interface{}) {
	u.entry("✗").Errorf(format, args...)
}

func (u *UserLogger) Warn(msg string) {
	u.entry("⚠").Warn(msg)
}

// Startingf announces the beginning of a run
func (u *UserLogger) Startingf(format string, args ...interface{}) {
	u.entry("▶").Infof(format, args...)
}

// Successf reports a completed run
func (u *UserLogger) Successf(format string, args ...interface{}) {
	u.entry("✓").Infof(format, args...)
}

// OpLogger methods carry no status markers
func (o *OpLogger) entry() *logrus.Entry {
	return o.base.On(OpLog, nil)
}

func (o *OpLogger) Warnf(format string, args ...interface{}) {
	o.entry().Warnf(format, args...)
}

func (o *OpLogger) Debug(msg string) {
	o.entry().Debug(msg)
}

func (o *OpLogger) Debugf(format string, args ...interface{}) {
	o.entry().Debugf(format, args...)
}

func (o *OpLogger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return o.base.On(OpLog, fields)
}

// CLIFormatter provides clean output for CLI applications
type CLIFormatter struct {
	DisableTimestamp bool
	DisableLevel     bool
	DisableColors    bool
}

func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}

	if !f.DisableLevel {
		levelColor, resetColor := "", ""
		if !f.DisableColors {
			switch entry.Level {
			case logrus.ErrorLevel:
				levelColor = "\033[31m" // Red
			case logrus.WarnLevel:
				levelColor = "\033[33m" // Yellow
			case logrus.InfoLevel:
				levelColor = "\033[36m" // Cyan
			case logrus.DebugLevel:
				levelColor = "\033[37m" // White
			}
			resetColor = "\033[0m"
		}

		b.WriteString(levelColor)
		b.WriteString(strings.ToUpper(entry.Level.String()))
		b.WriteString(resetColor)
		b.WriteString(": ")
	}

	if status, ok := entry.Data[statusField].(string); ok && status != "" {
		b.WriteString(status)
		b.WriteByte(' ')
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == logTypeField || k == statusField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Setup configures level, format and routing of both channels. The
// TAKUS_LOG_MODE and TAKUS_LOG_FORMAT environment variables override flags.
func Setup(verbose bool, jsonLogs bool, quiet bool) {
	switch os.Getenv(EnvLogMode) {
	case "quiet":
		quiet, verbose = true, false
	case "verbose", "debug":
		verbose, quiet = true, false
	}

	switch os.Getenv(EnvLogFormat) {
	case "json":
		jsonLogs = true
	case "text":
		jsonLogs = false
	}

	quietMode, jsonMode = quiet, jsonLogs

	level := logrus.InfoLevel
	if quiet {
		level = logrus.ErrorLevel
	} else if verbose {
		level = logrus.DebugLevel
	}

	hook := NewOutputRouterHook()
	if jsonLogs {
		hook.UserFormatter = &logrus.JSONFormatter{}
		hook.OpFormatter = &logrus.JSONFormatter{}
	} else if verbose {
		hook.OpFormatter = &logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
		}
	} else {
		hook.OpFormatter = &CLIFormatter{
			DisableTimestamp: true,
			DisableColors:    !isatty.IsTerminal(os.Stderr.Fd()),
		}
	}
	if router != nil {
		hook.UserWriter, hook.OpWriter = router.UserWriter, router.OpWriter
	}

	// output is handled by the hook
	GetLogger().Configure(io.Discard, level, &logrus.TextFormatter{}, hook)
	router = hook
}

// SetOutput redirects the user and operational channels. It only takes
// effect once Setup has installed the routing hook.
func SetOutput(user, op io.Writer) {
	if router == nil {
		return
	}
	router.mu.Lock()
	defer router.mu.Unlock()
	router.UserWriter = user
	router.OpWriter = op
}

// Quiet reports whether Setup suppressed everything below errors.
func Quiet() bool {
	return quietMode
}

// JSON reports whether Setup switched both channels to JSON.
func JSON() bool {
	return jsonMode
}
