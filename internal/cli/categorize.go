package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/classify"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/gitio"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// CategorizeFlags holds categorize command flags
type CategorizeFlags struct {
	FileChanges string
	FullDiff    string
	Output      string
}

var categorizeFlags CategorizeFlags

// NewCategorizeCommand creates the categorize command
func NewCategorizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Classify every changed file into a migration action",
		Long: `Read the diff sets (run diffs first) and assign each changed file one
migration action: copy, patch, revert, restore or accept. Writes the file
inventory consumed by the patches and report commands.`,
		RunE: runCategorize,
	}

	cmd.Flags().StringVar(&categorizeFlags.FileChanges, "file-changes", "", "primary name-status list (default from the diffs directory)")
	cmd.Flags().StringVar(&categorizeFlags.FullDiff, "full-diff", "", "primary full diff (default from the diffs directory)")
	cmd.Flags().StringVarP(&categorizeFlags.Output, "output", "o", "", "output file (default <analysis-dir>/CUSTOM_CHANGES_INVENTORY.json)")

	return cmd
}

func runCategorize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	ws := newWorkspace(cfg)

	primary := categorizeFlags.FileChanges
	if primary == "" {
		primary = diffSetPath(ws.DiffsDir(), models.PairCustomizations, "file-changes.txt")
	}
	fullDiffPath := categorizeFlags.FullDiff
	if fullDiffPath == "" {
		fullDiffPath = diffSetPath(ws.DiffsDir(), models.PairCustomizations, "full-diff.patch")
	}

	changesText, err := os.ReadFile(primary)
	if err != nil {
		return fmt.Errorf("failed to read change list %s (run 'diffs' first): %w", primary, err)
	}
	fullDiff, err := os.ReadFile(fullDiffPath)
	if err != nil {
		return fmt.Errorf("failed to read full diff %s (run 'diffs' first): %w", fullDiffPath, err)
	}

	in := classify.Input{
		Changes:  gitio.ParseNameStatus(string(changesText)),
		FullDiff: string(fullDiff),
		PairSets: loadPairSets(ws.DiffsDir()),
	}

	inv := classify.New(logger).Classify(ctx, in)

	out := categorizeFlags.Output
	if out == "" {
		out = filepath.Join(ws.Root(), "CUSTOM_CHANGES_INVENTORY.json")
	}
	if err := ws.WriteJSON(out, inv); err != nil {
		return err
	}

	say(cfg, "Inventory written to %s\n", out)
	say(cfg, "  Custom files:   %d\n", inv.Summary.CustomFilesCount)
	say(cfg, "  Modified files: %d (revert %d, patch %d)\n",
		inv.Summary.ModifiedFilesCount, inv.Summary.FilesToRevertCount, inv.Summary.FilesToPatchCount)
	say(cfg, "  Removed files:  %d (restore %d, accept %d)\n",
		inv.Summary.RemovedFilesCount, inv.Summary.FilesToRestoreCount, inv.Summary.FilesToAcceptCount)
	for _, warning := range inv.ConsistencyWarnings() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	return nil
}

// loadPairSets reads each pair's name-status list for provenance labels.
// Missing files are tolerated; the classifier falls back to attributing
// paths to the customizations pair.
func loadPairSets(diffsDir string) map[models.Pair]*gitio.ChangeSet {
	sets := make(map[models.Pair]*gitio.ChangeSet)
	for _, pair := range models.AllPairs {
		data, err := os.ReadFile(diffSetPath(diffsDir, pair, "file-changes.txt"))
		if err != nil {
			continue
		}
		sets[pair] = gitio.ParseNameStatus(string(data))
	}
	return sets
}

func diffSetPath(diffsDir string, pair models.Pair, suffix string) string {
	for i, p := range models.AllPairs {
		if p == pair {
			return filepath.Join(diffsDir, fmt.Sprintf("%02d-%s-%s", i+1, pair.Slug(), suffix))
		}
	}
	return filepath.Join(diffsDir, pair.Slug()+"-"+suffix)
}
