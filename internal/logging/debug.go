package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	forced bool
)

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG environment
// variable or SetDebug.
func DebugEnabled() bool {
	mu.Lock()
	on := forced
	mu.Unlock()
	return on || os.Getenv("TM_DEBUG") != ""
}

// SetDebug turns debug output on regardless of TM_DEBUG.
func SetDebug(on bool) {
	mu.Lock()
	defer mu.Unlock()
	forced = on
}

// SetOutput redirects debug, warning and error output. It returns the
// previous writer so tests can restore it.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

func write(prefix, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, prefix+format, args...)
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("debug: ", format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("debug: ", "%s", fmt.Sprintln(args...))
	}
}

// Warnf reports a recovered problem. Always printed.
func Warnf(format string, args ...interface{}) {
	write("warning: ", format, args...)
}

// Errorf reports a failure the caller could not recover from. Always printed.
func Errorf(format string, args ...interface{}) {
	write("error: ", format, args...)
}
