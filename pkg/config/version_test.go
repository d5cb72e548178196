package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const versionConfigJSON = `{
  "git_config": {
    "current_branch": "main",
    "comparison_ref": "v10.0.0",
    "destination_ref": "v15.4.0",
    "upstream_remote": "upstream"
  },
  "current_version": {"theme_base": "dawn-10-custom", "full_version": "10.0.0+custom"},
  "comparison_version": {"theme_base": "dawn-10", "git_ref": "v10.0.0"},
  "destination_version": {"theme_base": "dawn-15", "full_version": "15.4.0", "git_ref": "v15.4.0"}
}`

func writeVersionConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "version-config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write version config: %v", err)
	}
	return path
}

func TestLoadVersionConfig(t *testing.T) {
	path := writeVersionConfig(t, versionConfigJSON)

	cfg, err := LoadVersionConfig(path)
	if err != nil {
		t.Fatalf("LoadVersionConfig failed: %v", err)
	}

	refs := cfg.Refs()
	if refs.Current != "main" || refs.Comparison != "v10.0.0" || refs.Destination != "v15.4.0" {
		t.Errorf("unexpected refs: %+v", refs)
	}
	if cfg.DestinationVersion.ThemeBase != "dawn-15" {
		t.Errorf("destination theme_base = %q", cfg.DestinationVersion.ThemeBase)
	}
}

func TestLoadVersionConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	_, err := LoadVersionConfig(path)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "create it") {
		t.Errorf("missing-file error should explain the fix, got: %v", err)
	}
}

func TestLoadVersionConfigMalformed(t *testing.T) {
	path := writeVersionConfig(t, "{not json")

	if _, err := LoadVersionConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestRefsDefaults(t *testing.T) {
	cfg := &VersionConfig{}

	refs := cfg.Refs()
	if refs.Current != "HEAD" {
		t.Errorf("current default = %q, want HEAD", refs.Current)
	}
	if refs.Comparison != "v10.0.0" {
		t.Errorf("comparison default = %q, want v10.0.0", refs.Comparison)
	}
	if refs.Destination != "upstream/main" {
		t.Errorf("destination default = %q, want upstream/main", refs.Destination)
	}
	if refs.UpstreamRemote != "upstream" {
		t.Errorf("upstream remote default = %q, want upstream", refs.UpstreamRemote)
	}
}

func TestValue(t *testing.T) {
	path := writeVersionConfig(t, versionConfigJSON)
	cfg, err := LoadVersionConfig(path)
	if err != nil {
		t.Fatalf("LoadVersionConfig failed: %v", err)
	}

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"destination.theme_base", "dawn-15", false},
		{"comparison.git_ref", "v10.0.0", false},
		{"current.full_version", "10.0.0+custom", false},
		{"current.git_ref", "", true},   // unset value
		{"future.theme_base", "", true}, // unknown section
		{"current.nope", "", true},      // unknown field
		{"theme_base", "", true},        // no section
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cfg.Value(tt.key)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Value failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Value = %q, want %q", got, tt.want)
			}
		})
	}
}
