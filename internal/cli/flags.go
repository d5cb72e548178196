package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	VersionConfig string
	SettingsFile  string
	AnalysisDir   string
	Verbose       bool
	Quiet         bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.VersionConfig,
		"version-config",
		"",
		"version config file (default is .upgrade-analysis/version-config.json)",
	)
	cmd.PersistentFlags().StringVar(
		&globalFlags.SettingsFile,
		"settings",
		"",
		"settings file (default is $HOME/.config/themeup/settings.yaml)",
	)
	cmd.PersistentFlags().StringVar(
		&globalFlags.AnalysisDir,
		"analysis-dir",
		"",
		"analysis artifact directory (default is .upgrade-analysis)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}
