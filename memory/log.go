package memory

import (
	"fmt"
	"os"
)

// Logger lets applications route a Memory's segment-growth diagnostics
// into their own logging.
type Logger interface {
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

// NopLogger discards every message. Use it via WithLogger to silence a
// Memory's diagnostics entirely.
type NopLogger struct{}

func (NopLogger) Infof(format string, v ...interface{}) {}
func (NopLogger) Warnf(format string, v ...interface{}) {}

// stderrLogger is the Logger a Memory uses when none is supplied via
// WithLogger.
type stderrLogger struct{}

func (stderrLogger) Infof(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "memory [info] "+format+"\n", v...)
}

func (stderrLogger) Warnf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "memory [warn] "+format+"\n", v...)
}
