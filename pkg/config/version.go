package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// DefaultVersionConfigPath is the conventional location of the version
// configuration inside an analyzed theme repository.
const DefaultVersionConfigPath = ".upgrade-analysis/version-config.json"

// GitConfig pins the git references the analysis runs against
type GitConfig struct {
	CurrentBranch  string `json:"current_branch"`
	ComparisonRef  string `json:"comparison_ref"`
	DestinationRef string `json:"destination_ref"`
	UpstreamRemote string `json:"upstream_remote"`
}

// VersionRecord describes one theme version involved in the upgrade
type VersionRecord struct {
	ThemeBase   string `json:"theme_base"`
	FullVersion string `json:"full_version,omitempty"`
	GitRef      string `json:"git_ref,omitempty"`
}

// VersionConfig is the per-repository version configuration. It is the
// single source of truth for which three snapshots the analysis compares.
type VersionConfig struct {
	GitConfig          GitConfig     `json:"git_config"`
	CurrentVersion     VersionRecord `json:"current_version"`
	ComparisonVersion  VersionRecord `json:"comparison_version"`
	DestinationVersion VersionRecord `json:"destination_version"`
}

// LoadVersionConfig loads the version configuration from path, falling
// back to DefaultVersionConfigPath when path is empty. A missing file is
// a fatal setup error with instructions, not a silent default.
func LoadVersionConfig(path string) (*VersionConfig, error) {
	if path == "" {
		path = DefaultVersionConfigPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("version config not found at %s: create it with git_config and the current/comparison/destination version records before running the analysis", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read version config: %w", err)
	}

	cfg := &VersionConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse version config %s: %w", path, err)
	}

	return cfg, nil
}

// Refs resolves the three git references, applying the historical
// defaults for keys the file leaves empty.
func (c *VersionConfig) Refs() models.GitRefs {
	refs := models.GitRefs{
		Current:        "HEAD",
		Comparison:     "v10.0.0",
		Destination:    "upstream/main",
		UpstreamRemote: "upstream",
	}
	if c.GitConfig.CurrentBranch != "" {
		refs.Current = c.GitConfig.CurrentBranch
	}
	if c.GitConfig.ComparisonRef != "" {
		refs.Comparison = c.GitConfig.ComparisonRef
	}
	if c.GitConfig.DestinationRef != "" {
		refs.Destination = c.GitConfig.DestinationRef
	}
	if c.GitConfig.UpstreamRemote != "" {
		refs.UpstreamRemote = c.GitConfig.UpstreamRemote
	}
	return refs
}

// Value looks up a version field by dotted key, e.g.
// "destination.theme_base". Intended for scripting (Makefiles) via the
// config get command.
func (c *VersionConfig) Value(key string) (string, error) {
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return "", fmt.Errorf("invalid key %q: expected <section>.<field>", key)
	}

	var record VersionRecord
	switch section {
	case "current":
		record = c.CurrentVersion
	case "comparison":
		record = c.ComparisonVersion
	case "destination":
		record = c.DestinationVersion
	default:
		return "", fmt.Errorf("unknown section %q: expected current, comparison, or destination", section)
	}

	var value string
	switch field {
	case "theme_base":
		value = record.ThemeBase
	case "full_version":
		value = record.FullVersion
	case "git_ref":
		value = record.GitRef
	default:
		return "", fmt.Errorf("unknown field %q: expected theme_base, full_version, or git_ref", field)
	}

	if value == "" {
		return "", fmt.Errorf("key %q is not set in the version config", key)
	}
	return value, nil
}
