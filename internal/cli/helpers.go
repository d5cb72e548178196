package cli

import (
	"fmt"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/config"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/gitio"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/logging"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/workspace"
)

// loadSettings loads the tool settings and applies the global flag
// overrides.
func loadSettings() (*config.Settings, error) {
	var (
		cfg *config.Settings
		err error
	)
	if globalFlags.SettingsFile != "" {
		cfg, err = config.LoadFromFile(globalFlags.SettingsFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if globalFlags.AnalysisDir != "" {
		cfg.Analysis.Dir = globalFlags.AnalysisDir
	}
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
		cfg.Output.Progress = false
	}
	if globalFlags.Verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// loadVersionConfig loads the per-repository version configuration
func loadVersionConfig() (*config.VersionConfig, error) {
	return config.LoadVersionConfig(globalFlags.VersionConfig)
}

// newLogger builds the logger described by the settings
func newLogger(cfg *config.Settings) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if cfg.Output.Quiet {
		level = logging.ErrorLevel
	}

	if cfg.Logging.File != "" {
		return logging.NewFileLogger(cfg.Logging.File, logging.Format(cfg.Logging.Format), level)
	}
	return logging.NewConsoleLogger(level), nil
}

// newWorkspace builds the workspace rooted at the configured analysis dir
func newWorkspace(cfg *config.Settings) *workspace.Workspace {
	return workspace.New(cfg.Analysis.Dir)
}

// newGitClient builds the git client for the current repository
func newGitClient(cfg *config.Settings, logger logging.Logger) *gitio.Client {
	return gitio.NewClient(gitio.NewExecRunner(cfg.Git.Binary, ""), logger)
}

// say prints to stdout unless quiet mode is on
func say(cfg *config.Settings, format string, args ...interface{}) {
	if cfg.Output.Quiet {
		return
	}
	fmt.Printf(format, args...)
}
