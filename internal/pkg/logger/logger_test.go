package logger

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestStdLoggerWarnAndErrorAlwaysEmit(t *testing.T) {
	buf := captureLog(t)
	l := NewStd(false)

	l.Warn("server offline", nil)
	l.Error("store broke", errors.New("boom"), nil)

	out := buf.String()
	if !strings.Contains(out, "[WARN] server offline") {
		t.Fatalf("warn suppressed: %q", out)
	}
	if !strings.Contains(out, "[ERROR] store broke") {
		t.Fatalf("error suppressed: %q", out)
	}
}

func TestStdLoggerDebugInfoGatedByVerbose(t *testing.T) {
	buf := captureLog(t)

	quiet := NewStd(false)
	quiet.Debug("tick", nil)
	quiet.Info("login", nil)
	if buf.Len() != 0 {
		t.Fatalf("non-verbose logger emitted: %q", buf.String())
	}

	verbose := NewStd(true)
	verbose.Debug("tick", nil)
	verbose.Info("login", nil)
	out := buf.String()
	if !strings.Contains(out, "[DEBUG] tick") || !strings.Contains(out, "[INFO] login") {
		t.Fatalf("verbose logger suppressed output: %q", out)
	}
}

func TestForBackendSelection(t *testing.T) {
	if _, ok := ForBackend("charm", false).(*CharmLogger); !ok {
		t.Fatal("charm backend not selected")
	}
	if _, ok := ForBackend("std", false).(*StdLogger); !ok {
		t.Fatal("std backend not selected")
	}
	if _, ok := ForBackend("unknown", false).(*StdLogger); !ok {
		t.Fatal("unknown backend should fall back to std")
	}
}
