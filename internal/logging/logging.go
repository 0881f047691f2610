// Package logging configures gtadapter's charmbracelet/log loggers.
//
// All log output goes to stderr so stdout stays reserved for command output
// (plans, resolved strings, JSON). Context switch diagnostics are emitted at
// Debug level and only show up with --verbose.
//
//	logging.Setup(verbose, quiet, jsonFormat) // once, in PersistentPreRunE
//	var logger = logging.New("switcher")
//	logger.Debug("switched to override", "target", exe)
//
// Setup must run before New: charmbracelet/log copies the default logger's
// state into a child at creation time.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases so callers do not import charmbracelet/log for levels alone.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Setup configures the default logger. quiet wins over verbose.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New returns a child of the default logger with the given component prefix.
// An empty component produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// NewWriter returns a standalone logger writing to w at the given level. It
// does not touch the default logger, which makes it the right choice for
// tests that run in parallel and inspect diagnostics.
func NewWriter(w io.Writer, component string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: component,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return NewWriter(io.Discard, "", log.FatalLevel)
}

// SetOutput redirects the default logger. Tests restore it with t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
