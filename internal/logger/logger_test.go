package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestLogger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(Close)
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(b)
}

func TestLogger_BeforeInitDiscards(t *testing.T) {
	Close()
	// Must not panic.
	Logger().Info("dropped")
	Component("x").Debug("dropped")
}

func TestComponent_WritesAttribute(t *testing.T) {
	path := setupTestLogger(t)

	Component("container").Info("evicted screen", "index", 2)

	content := readLog(t, path)
	if !strings.Contains(content, "component=container") {
		t.Errorf("expected component attribute, got %q", content)
	}
	if !strings.Contains(content, `msg="evicted screen"`) || !strings.Contains(content, "index=2") {
		t.Errorf("expected message and attrs, got %q", content)
	}
}

func TestSetDebug(t *testing.T) {
	path := setupTestLogger(t)

	Logger().Debug("hidden")
	SetDebug(true)
	Logger().Debug("shown")
	SetDebug(false)

	content := readLog(t, path)
	if strings.Contains(content, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(content, "shown") {
		t.Error("debug message missing after SetDebug(true)")
	}
}

func TestInit_BadPath(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
