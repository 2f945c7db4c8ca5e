package update

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// RuntimeConfig is the file/env tunable surface. Precedence is defaults,
// then the YAML file, then MINDFLOW_* environment variables.
type RuntimeConfig struct {
	DatabasePath      string `yaml:"database_path"`
	LogPath           string `yaml:"log_path"`
	GeminiModel       string `yaml:"gemini_model"`
	FocusWorkMinutes  int    `yaml:"focus_work_minutes"`
	FocusBreakMinutes int    `yaml:"focus_break_minutes"`
	AlertBuffer       int    `yaml:"alert_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:      "mindflow.db",
		LogPath:           "mindflow.log",
		GeminiModel:       "",
		FocusWorkMinutes:  25,
		FocusBreakMinutes: 5,
		AlertBuffer:       64,
	}
}

// LoadRuntimeConfig reads the YAML config file over the defaults. A missing
// file is not an error; a file that exists but does not parse is.
func LoadRuntimeConfig(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("update: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("update: parse config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("MINDFLOW_DATABASE_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("MINDFLOW_LOG_PATH")); v != "" {
		cfg.LogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("MINDFLOW_GEMINI_MODEL")); v != "" {
		cfg.GeminiModel = v
	}
	if v, ok := getEnvInt("MINDFLOW_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v, ok := getEnvInt("MINDFLOW_FOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusBreakMinutes = v
	}
	if v, ok := getEnvInt("MINDFLOW_ALERT_BUFFER"); ok && v > 0 {
		cfg.AlertBuffer = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
