package orchestrator

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// pkgLogger is the package-level debug logger used by orchestrator components.
var pkgLogger *DebugLogger
var pkgLoggerMu sync.RWMutex

// setPackageLogger sets the package-level logger.
func setPackageLogger(l *DebugLogger) {
	pkgLoggerMu.Lock()
	defer pkgLoggerMu.Unlock()
	pkgLogger = l
}

// debugLog writes a message using the package-level logger.
// Used by components like the registry that don't hold a logger themselves.
func debugLog(format string, args ...interface{}) {
	pkgLoggerMu.RLock()
	l := pkgLogger
	pkgLoggerMu.RUnlock()

	if l != nil {
		l.Log(format, args...)
	}
}

// DebugLogger writes timestamped debug lines to a writer.
// Writes are serialized so one logger can be shared by a session and its
// front-end.
type DebugLogger struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewDebugLogger creates a logger writing to w.
// A nil writer yields a no-op logger.
func NewDebugLogger(w io.Writer) *DebugLogger {
	return &DebugLogger{out: w, now: time.Now}
}

// NopLogger returns a no-op logger for testing or when logging is disabled.
func NopLogger() *DebugLogger {
	return &DebugLogger{}
}

// Log writes a timestamped message.
// If the logger is nil or has no writer, this is a no-op.
func (l *DebugLogger) Log(format string, args ...interface{}) {
	if l == nil || l.out == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now
	if l.now != nil {
		now = l.now
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[%s] %s\n", now().Format("15:04:05.000"), msg)
}

// Enabled reports whether Log writes anywhere.
func (l *DebugLogger) Enabled() bool {
	return l != nil && l.out != nil
}
