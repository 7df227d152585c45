// Package logging owns the process logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared process logger. Packages derive scoped entries with For.
var Log = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Configure sets the level by name and switches between text and JSON output.
func Configure(level string, json bool) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("logging: level %q: %w", level, err)
		}
		Log.SetLevel(lvl)
	}
	if json {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// SetOutput redirects the process logger, mostly for the terminal viewer,
// which owns stdout and stderr while it runs.
func SetOutput(out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	Log.SetOutput(out)
}

// For returns an entry tagged with the given component name.
func For(component string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{"component": component})
}
