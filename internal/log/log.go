// Package log provides centralized logging for the btngen command.
//
// Logging is off until SetOutput is called. The compiler packages never log;
// only the command layer does.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar names a file that receives logs when no --log flag is given.
const EnvVar = "BTNGEN_LOG"

var (
	out io.Writer
	mu  sync.Mutex
)

// SetOutput sets the log destination. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// OpenFile appends logs to path, creating its directory if needed. The
// caller closes the returned file once logging is done.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

func write(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		fmt.Fprintf(out, prefix+format+"\n", args...)
	}
}

// Debug writes an unprefixed debug message.
func Debug(format string, args ...any) {
	write("", format, args...)
}

// Generate writes a generate-prefixed log message.
func Generate(format string, args ...any) {
	write("[generate] ", format, args...)
}

// Watch writes a watch-prefixed log message.
func Watch(format string, args ...any) {
	write("[watch] ", format, args...)
}

// Config writes a config-prefixed log message.
func Config(format string, args ...any) {
	write("[config] ", format, args...)
}

// Warn writes a warning that should reach the user even when it does not
// fail the run.
func Warn(format string, args ...any) {
	write("[warn] ", format, args...)
}

// Enabled returns true if logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return out != nil
}
