// Package config loads the two configuration layers of the toolkit: the
// version configuration pinning the three git references (JSON, required
// per repository) and the optional tool settings (YAML).
package config

import (
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// Settings represents the tool-level configuration
type Settings struct {
	Analysis AnalysisSettings `yaml:"analysis"`
	Output   OutputSettings   `yaml:"output"`
	Logging  LoggingSettings  `yaml:"logging"`
	Git      GitSettings      `yaml:"git"`
}

// AnalysisSettings holds analysis-related settings
type AnalysisSettings struct {
	Dir          string `yaml:"dir"`           // Analysis artifact directory
	CustomPrefix string `yaml:"custom_prefix"` // Prefix marking custom keys and setting ids
}

// OutputSettings holds output-related settings
type OutputSettings struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingSettings holds logging-related settings
type LoggingSettings struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// GitSettings holds git invocation settings
type GitSettings struct {
	Binary string `yaml:"binary"` // Path to the git executable
}

// Default returns the default settings
func Default() *Settings {
	return &Settings{
		Analysis: AnalysisSettings{
			Dir:          ".upgrade-analysis",
			CustomPrefix: "custom_",
		},
		Output: OutputSettings{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingSettings{
			Enabled: true,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
		Git: GitSettings{
			Binary: "git",
		},
	}
}

// Validate checks if the settings are valid
func (s *Settings) Validate() error {
	if s.Analysis.Dir == "" {
		return &models.ValidationError{
			Field:   "analysis.dir",
			Message: "must not be empty",
		}
	}

	if s.Analysis.CustomPrefix == "" {
		return &models.ValidationError{
			Field:   "analysis.custom_prefix",
			Message: "must not be empty",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[s.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[s.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[s.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if s.Git.Binary == "" {
		return &models.ValidationError{
			Field:   "git.binary",
			Message: "must not be empty",
		}
	}

	return nil
}
