package update

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRuntimeConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadRuntimeConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != DefaultRuntimeConfig() {
		t.Fatalf("expected defaults, got: %+v", cfg)
	}
}

func TestLoadRuntimeConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindflow.yaml")
	body := "database_path: /tmp/flow.db\nfocus_work_minutes: 50\ngemini_model: gemini-2.5-pro\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabasePath != "/tmp/flow.db" {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath)
	}
	if cfg.FocusWorkMinutes != 50 {
		t.Fatalf("unexpected focus minutes: %d", cfg.FocusWorkMinutes)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Fatalf("unexpected model: %q", cfg.GeminiModel)
	}
	if cfg.FocusBreakMinutes != 5 {
		t.Fatalf("unset keys must keep defaults, got: %d", cfg.FocusBreakMinutes)
	}
}

func TestLoadRuntimeConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("database_path: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadRuntimeConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("MINDFLOW_DATABASE_PATH", "/tmp/env.db")
	t.Setenv("MINDFLOW_FOCUS_WORK_MINUTES", "40")
	t.Setenv("MINDFLOW_ALERT_BUFFER", "128")
	t.Setenv("MINDFLOW_FOCUS_BREAK_MINUTES", "not-a-number")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DatabasePath != "/tmp/env.db" {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath)
	}
	if cfg.FocusWorkMinutes != 40 || cfg.AlertBuffer != 128 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.FocusBreakMinutes != 5 {
		t.Fatalf("bad env value must keep default, got: %d", cfg.FocusBreakMinutes)
	}
}
