package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCREENSTACK_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screens.Initial != 1 {
		t.Errorf("expected 1 initial screen, got %d", cfg.Screens.Initial)
	}
	if cfg.Trace.ServiceName != "screenstack" || cfg.Trace.Endpoint != "" {
		t.Errorf("unexpected trace defaults: %+v", cfg.Trace)
	}
	if filepath.Base(cfg.Log.Path) != "screenstack.log" {
		t.Errorf("unexpected log path %q", cfg.Log.Path)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[log]
debug = true

[trace]
endpoint = "localhost:4318"
service_name = "stack-dev"

[shell]
command = "/bin/sh"

[screens]
initial = 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Log.Debug {
		t.Error("expected debug from file")
	}
	if cfg.Trace.Endpoint != "localhost:4318" || cfg.Trace.ServiceName != "stack-dev" {
		t.Errorf("trace: got %+v", cfg.Trace)
	}
	if cfg.Shell.Command != "/bin/sh" {
		t.Errorf("shell: got %+v", cfg.Shell)
	}
	if cfg.Screens.Initial != 3 {
		t.Errorf("screens: got %d", cfg.Screens.Initial)
	}
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SCREENSTACK_CONFIG", "")
	dir := filepath.Join(home, ".config", "screenstack")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[screens]\ninitial = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screens.Initial != 4 {
		t.Errorf("expected 4 from home config, got %d", cfg.Screens.Initial)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SCREENSTACK_SCREENS_INITIAL", "5")
	t.Setenv("SCREENSTACK_TRACE_ENDPOINT", "collector:4318")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screens.Initial != 5 {
		t.Errorf("expected env override 5, got %d", cfg.Screens.Initial)
	}
	if cfg.Trace.Endpoint != "collector:4318" {
		t.Errorf("expected env endpoint, got %q", cfg.Trace.Endpoint)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_RejectsNegativeInitial(t *testing.T) {
	isolate(t)
	t.Setenv("SCREENSTACK_SCREENS_INITIAL", "-1")

	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error")
	}
}
