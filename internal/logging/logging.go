package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once     sync.Once
	instance *log.Logger
)

// Logger returns the process wide logger, writing to stderr.
func Logger() *log.Logger {
	once.Do(func() {
		instance = newLogger(os.Stderr)
	})
	return instance
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "cubescene",
	})
	l.SetLevel(log.InfoLevel)
	return l
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and applies it.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	Logger().SetOutput(w)
}

// For returns a child logger tagged with a component name.
func For(component string) *log.Logger {
	return Logger().With("component", component)
}
