package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/extract"
)

// NewExtractCommand creates the extract command
func NewExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Extract reference JSON documents from the comparison and destination refs",
		Long: `Extract the analyzed JSON documents (settings schema, settings data and
English locale files) from the comparison and destination git refs into the
analysis directory, where the analyze command reads them.`,
		RunE: runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	extractor := &extract.Extractor{
		Client: newGitClient(cfg, logger),
		WS:     newWorkspace(cfg),
		Logger: logger,
	}

	refs := versions.Refs()
	count, err := extractor.Run(ctx, refs)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	say(cfg, "Extracted %d documents (%s, %s)\n", count, refs.Comparison, refs.Destination)
	return nil
}
