package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"empty analysis dir", func(s *Settings) { s.Analysis.Dir = "" }},
		{"empty custom prefix", func(s *Settings) { s.Analysis.CustomPrefix = "" }},
		{"bad output format", func(s *Settings) { s.Output.Format = "xml" }},
		{"bad log format", func(s *Settings) { s.Logging.Format = "yaml" }},
		{"bad log level", func(s *Settings) { s.Logging.Level = "trace" }},
		{"empty git binary", func(s *Settings) { s.Git.Binary = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := `analysis:
  dir: .analysis
  custom_prefix: my_
output:
  format: json
  progress: false
logging:
  enabled: true
  format: json
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Analysis.Dir != ".analysis" {
		t.Errorf("analysis dir = %q", cfg.Analysis.Dir)
	}
	if cfg.Analysis.CustomPrefix != "my_" {
		t.Errorf("custom prefix = %q", cfg.Analysis.CustomPrefix)
	}
	if cfg.Output.Format != "json" || cfg.Output.Progress {
		t.Errorf("output settings not applied: %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	// Unspecified keys keep their defaults.
	if cfg.Git.Binary != "git" {
		t.Errorf("git binary should default, got %q", cfg.Git.Binary)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: csv\n"), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected an error for invalid settings")
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "settings.yaml")

	cfg := Default()
	cfg.Analysis.CustomPrefix = "shop_"
	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Analysis.CustomPrefix != "shop_" {
		t.Errorf("custom prefix = %q, want shop_", loaded.Analysis.CustomPrefix)
	}
}
