package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/patches"
)

// NewDiffsCommand creates the diffs command
func NewDiffsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diffs",
		Short: "Generate the three diff sets",
		Long: `Generate one diff set per comparison pair: a name-status change list,
the full unified diff, and per-language restricted diffs. The categorize
command consumes the change lists and the full diff.`,
		RunE: runDiffs,
	}
}

func runDiffs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	versions, err := loadVersionConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	ws := newWorkspace(cfg)
	gen := &patches.Generator{
		Client:   newGitClient(cfg, logger),
		WS:       ws,
		Logger:   logger,
		Progress: cfg.Output.Progress,
	}

	if err := gen.GenerateDiffSets(ctx, versions.Refs()); err != nil {
		return fmt.Errorf("diff generation failed: %w", err)
	}

	say(cfg, "Diff sets written to %s\n", ws.DiffsDir())
	return nil
}
