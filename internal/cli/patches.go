package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/patches"
)

// PatchesFlags holds patches command flags
type PatchesFlags struct {
	Inventory string
	SkipJSON  bool
}

var patchesFlags PatchesFlags

// NewPatchesCommand creates the patches command
func NewPatchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patches",
		Short: "Generate per-file and JSON document patches",
		Long: `Generate one patch per modified file from the inventory (run categorize
first), plus the customization and upstream-update patch views of each
analyzed JSON document.`,
		RunE: runPatches,
	}

	cmd.Flags().StringVar(&patchesFlags.Inventory, "inventory", "", "inventory file (default <analysis-dir>/CUSTOM_CHANGES_INVENTORY.json)")
	cmd.Flags().BoolVar(&patchesFlags.SkipJSON, "skip-json", false, "skip the JSON document patch views")

	return cmd
}

func runPatches(cmd *cobra.Command, args []string) error {
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
	inv, err := readInventory(patchesFlags.Inventory, ws.Root())
	if err != nil {
		return err
	}

	gen := &patches.Generator{
		Client:   newGitClient(cfg, logger),
		WS:       ws,
		Logger:   logger,
		Progress: cfg.Output.Progress && !cfg.Output.Quiet,
	}

	refs := versions.Refs()
	revertCount, patchCount, err := gen.GenerateFilePatches(ctx, refs, inv)
	if err != nil {
		return fmt.Errorf("file patch generation failed: %w", err)
	}
	say(cfg, "File patches: %d revert, %d re-apply (%s)\n", revertCount, patchCount, ws.PatchesDir())

	if !patchesFlags.SkipJSON {
		labels := patches.PatchLabels{
			ComparisonBase:  versions.ComparisonVersion.ThemeBase,
			DestinationBase: versions.DestinationVersion.ThemeBase,
		}
		count, err := gen.GenerateJSONPatches(ctx, refs, labels)
		if err != nil {
			return fmt.Errorf("JSON patch generation failed: %w", err)
		}
		say(cfg, "JSON document patches: %d (%s)\n", count, ws.JSONPatchesDir())
	}
	return nil
}

func readInventory(path, analysisRoot string) (*models.Inventory, error) {
	if path == "" {
		path = filepath.Join(analysisRoot, "CUSTOM_CHANGES_INVENTORY.json")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory %s (run 'categorize' first): %w", path, err)
	}
	inv := &models.Inventory{}
	if err := json.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory %s: %w", path, err)
	}
	return inv, nil
}
