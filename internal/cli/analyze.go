package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/analyze"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/config"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/jsondoc"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/workspace"
)

// AnalyzeFlags holds analyze command flags
type AnalyzeFlags struct {
	ThemeRoot string
	Output    string
}

var analyzeFlags AnalyzeFlags

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the structured JSON comparison",
		Long: `Compare the settings schema, settings data and English locale documents
across the three theme snapshots and write the merged changes report.
The comparison and destination snapshots are read from the analysis
directory (run extract first); the current snapshot is read from the
working tree.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeFlags.ThemeRoot, "theme-root", ".", "root of the current theme working tree")
	cmd.Flags().StringVarP(&analyzeFlags.Output, "output", "o", "", "output file (default <analysis-dir>/CUSTOM_JSON_CHANGES.json)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	ws := newWorkspace(cfg)
	prefix := cfg.Analysis.CustomPrefix

	report := &models.ChangesReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		ComparisonSets: map[models.Pair]string{
			models.PairCustomizations:  models.PairCustomizations.Describe(),
			models.PairUpstreamChanges: models.PairUpstreamChanges.Describe(),
			models.PairConflicts:       models.PairConflicts.Describe(),
		},
	}

	schemaDocs, err := loadTriple(ws, "config/settings_schema.json", jsondoc.LoadSchema)
	if err != nil {
		return err
	}
	report.SettingsSchema = analyze.AnalyzeSchema(schemaDocs[0], schemaDocs[1], schemaDocs[2])

	dataDocs, err := loadTriple(ws, "config/settings_data.json", jsondoc.LoadFlat)
	if err != nil {
		return err
	}
	report.SettingsData = analyze.AnalyzeSettingsData(dataDocs[0], dataDocs[1], dataDocs[2], prefix)

	localeDocs, err := loadTriple(ws, "locales/en.default.json", jsondoc.LoadFlat)
	if err != nil {
		return err
	}
	report.LocaleEN = analyze.AnalyzeLocale(localeDocs[0], localeDocs[1], localeDocs[2], prefix)

	localeSchemaDocs, err := loadTriple(ws, "locales/en.default.schema.json", jsondoc.LoadFlat)
	if err != nil {
		return err
	}
	report.LocaleENSchema = analyze.AnalyzeLocale(localeSchemaDocs[0], localeSchemaDocs[1], localeSchemaDocs[2], prefix)

	out := analyzeFlags.Output
	if out == "" {
		out = filepath.Join(ws.Root(), "CUSTOM_JSON_CHANGES.json")
	}
	if err := ws.WriteJSON(out, report); err != nil {
		return err
	}

	say(cfg, "Changes report written to %s\n", out)
	printSchemaSummary(cfg, report.SettingsSchema)
	return nil
}

// loadTriple loads a document from the comparison snapshot, the current
// working tree, and the destination snapshot, in that order.
func loadTriple[T any](ws *workspace.Workspace, file string, load func(string) (T, error)) ([3]T, error) {
	var docs [3]T
	safe := workspace.SafeName(file)

	paths := [3]string{
		filepath.Join(ws.ComparisonDir(), safe),
		filepath.Join(analyzeFlags.ThemeRoot, filepath.FromSlash(file)),
		filepath.Join(ws.DestinationDir(), safe),
	}
	for i, p := range paths {
		doc, err := load(p)
		if err != nil {
			return docs, fmt.Errorf("failed to load %s: %w", p, err)
		}
		docs[i] = doc
	}
	return docs, nil
}

func printSchemaSummary(cfg *config.Settings, analysis *models.SchemaAnalysis) {
	for _, pair := range models.AllPairs {
		pc, ok := analysis.Pairs[pair]
		if !ok {
			continue
		}
		adds, mods, rems, sections := pc.Counts()
		say(cfg, "  %-60s %d additions, %d modifications, %d removals, %d new sections\n",
			pair.Describe()+":", adds, mods, rems, sections)
	}
}
