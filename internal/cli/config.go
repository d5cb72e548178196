package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the version configuration",
		Long:  `View the version configuration driving the analysis, or read a single value for scripting.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigGetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved version configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := loadVersionConfig()
			if err != nil {
				return err
			}

			refs := versions.Refs()
			fmt.Printf("Current:     %s (ref: %s)\n", versions.CurrentVersion.ThemeBase, refs.Current)
			fmt.Printf("Comparison:  %s (ref: %s)\n", versions.ComparisonVersion.ThemeBase, refs.Comparison)
			fmt.Printf("Destination: %s (ref: %s)\n", versions.DestinationVersion.ThemeBase, refs.Destination)
			fmt.Printf("Upstream remote: %s\n", refs.UpstreamRemote)

			return nil
		},
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <section.field>",
		Short: "Print a single version config value",
		Long: `Print one value from the version configuration, e.g.
'config get destination.theme_base'. Intended for Makefiles and scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := loadVersionConfig()
			if err != nil {
				return err
			}

			value, err := versions.Value(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}
