package orchestrator

import (
	"bytes"
	"testing"
	"time"
)

func TestDebugLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := NewDebugLogger(&buf)
	l.now = func() time.Time { return time.Date(2025, 1, 1, 9, 8, 7, 6_000_000, time.UTC) }

	l.Log("run %d on %s", 3, "repo")

	if got, want := buf.String(), "[09:08:07.006] run 3 on repo\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !l.Enabled() {
		t.Error("logger with writer should be enabled")
	}
}

func TestDebugLogger_NoopVariants(t *testing.T) {
	var nilLogger *DebugLogger
	nilLogger.Log("ignored")
	NopLogger().Log("ignored")
	NewDebugLogger(nil).Log("ignored")

	if nilLogger.Enabled() || NopLogger().Enabled() {
		t.Error("no-op loggers should report disabled")
	}
}

func TestDebugLog_UsesPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	setPackageLogger(NewDebugLogger(&buf))
	t.Cleanup(func() { setPackageLogger(nil) })

	debugLog("[registry] %s", "hello")

	if !bytes.Contains(buf.Bytes(), []byte("[registry] hello")) {
		t.Errorf("package logger output = %q", buf.String())
	}
}
