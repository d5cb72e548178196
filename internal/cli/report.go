package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/output"
)

// ReportFlags holds report command flags
type ReportFlags struct {
	Inventory   string
	JSONChanges string
	Output      string
	ExtractJSON bool
}

var reportFlags ReportFlags

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble the markdown upgrade report",
		Long: `Render the markdown upgrade report from the inventory and the changes
report (run categorize and analyze first). Optionally split the changes
report into per-category JSON files.`,
		RunE: runReport,
	}

	cmd.Flags().StringVar(&reportFlags.Inventory, "inventory", "", "inventory file (default <analysis-dir>/CUSTOM_CHANGES_INVENTORY.json)")
	cmd.Flags().StringVar(&reportFlags.JSONChanges, "json-changes", "", "changes report file (default <analysis-dir>/CUSTOM_JSON_CHANGES.json)")
	cmd.Flags().StringVarP(&reportFlags.Output, "output", "o", "", "output file (default <analysis-dir>/CUSTOM_CHANGES_ANALYSIS.md)")
	cmd.Flags().BoolVar(&reportFlags.ExtractJSON, "extract-json", false, "also split the changes report into per-category JSON files")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	versions, err := loadVersionConfig()
	if err != nil {
		return err
	}

	ws := newWorkspace(cfg)

	inv, err := readInventory(reportFlags.Inventory, ws.Root())
	if err != nil {
		return err
	}
	changes, err := readChangesReport(reportFlags.JSONChanges, ws.Root())
	if err != nil {
		return err
	}

	assembler := &output.Assembler{
		Inventory:   inv,
		Changes:     changes,
		Versions:    versions,
		AnalysisDir: ws.Root(),
	}

	out := reportFlags.Output
	if out == "" {
		out = filepath.Join(ws.Root(), "CUSTOM_CHANGES_ANALYSIS.md")
	}
	if err := ws.WriteFile(out, []byte(assembler.Render())); err != nil {
		return err
	}
	say(cfg, "Report written to %s\n", out)

	if reportFlags.ExtractJSON {
		written, err := output.ExtractChangeFiles(ws, changes)
		if err != nil {
			return fmt.Errorf("change extraction failed: %w", err)
		}
		say(cfg, "Extracted %d change files to %s\n", len(written), ws.JSONChangesDir())
	}
	return nil
}

func readChangesReport(path, analysisRoot string) (*models.ChangesReport, error) {
	if path == "" {
		path = filepath.Join(analysisRoot, "CUSTOM_JSON_CHANGES.json")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read changes report %s (run 'analyze' first): %w", path, err)
	}
	report := &models.ChangesReport{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed to parse changes report %s: %w", path, err)
	}
	return report, nil
}
