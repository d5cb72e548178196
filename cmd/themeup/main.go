package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "themeup",
		Short: "Shopify theme upgrade analysis toolkit",
		Long: `themeup analyzes a customized Shopify theme against the upstream version
it was built on and the upstream version it is migrating to. It extracts
reference snapshots, generates diff sets, runs a structured comparison of
the theme's JSON configuration, classifies every changed file into a
migration action, and assembles a reviewable upgrade report.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewExtractCommand())
	rootCmd.AddCommand(cli.NewDiffsCommand())
	rootCmd.AddCommand(cli.NewAnalyzeCommand())
	rootCmd.AddCommand(cli.NewCategorizeCommand())
	rootCmd.AddCommand(cli.NewPatchesCommand())
	rootCmd.AddCommand(cli.NewReportCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
