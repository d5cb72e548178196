package integration

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/analyze"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/classify"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/config"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/extract"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/gitio"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/jsondoc"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/output"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/workspace"
)

// repoRunner simulates the git repository of a customized theme built on
// v10.0.0 and being migrated to v15.4.0.
type repoRunner struct {
	shows      map[string]string
	nameStatus map[string]string
	diffs      map[string]string
}

func (r *repoRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	key := strings.Join(args, " ")
	switch {
	case args[0] == "show":
		if content, ok := r.shows[args[1]]; ok {
			return content, "", nil
		}
		return "", "fatal: path does not exist", errors.New("exit status 128")
	case strings.HasPrefix(key, "diff --name-status "):
		return r.nameStatus[args[2]], "", nil
	case args[0] == "diff":
		return r.diffs[key], "", nil
	}
	return "", "", errors.New("unexpected invocation: " + key)
}

const comparisonSchema = `[
  {"name": "theme_info", "theme_version": "10.0.0"},
  {"name": "Colors", "settings": [
    {"id": "background", "type": "color", "label": "Background"}
  ]}
]`

const currentSchema = `[
  {"name": "theme_info", "theme_version": "10.0.0"},
  {"name": "Colors", "settings": [
    {"id": "background", "type": "color", "label": "Background"},
    {"id": "custom_accent", "type": "color", "label": "Accent"}
  ]}
]`

const destinationSchema = `[
  {"name": "theme_info", "theme_version": "15.4.0"},
  {"name": "Colors", "settings": [
    {"id": "background", "type": "color", "label": "Background"},
    {"id": "gradient", "type": "color_background", "label": "Gradient"}
  ]}
]`

const fullDiff = `diff --git a/layout/theme.liquid b/layout/theme.liquid
--- a/layout/theme.liquid
+++ b/layout/theme.liquid
@@ -5,2 +5,3 @@
 <head>
+{% render 'custom-meta' %}
 <meta charset="utf-8">
`

func newRepoRunner() *repoRunner {
	flat := `{"general": {"search": "Search"}}`
	shows := map[string]string{}
	for _, file := range extract.DefaultFiles {
		shows["v10.0.0:"+file] = flat
		shows["v15.4.0:"+file] = flat
	}
	shows["v10.0.0:config/settings_schema.json"] = comparisonSchema
	shows["v15.4.0:config/settings_schema.json"] = destinationSchema

	return &repoRunner{
		shows: shows,
		nameStatus: map[string]string{
			"v10.0.0..main":    "A\tassets/custom-wizard.js\nM\tlayout/theme.liquid\nM\tlocales/fr.json\nD\t.gitignore\n",
			"v10.0.0..v15.4.0": "M\tconfig/settings_schema.json\n",
			"main..v15.4.0":    "M\tconfig/settings_schema.json\nM\tlayout/theme.liquid\n",
		},
		diffs: map[string]string{
			"diff v10.0.0..main": fullDiff,
		},
	}
}

func TestPipeline(t *testing.T) {
	ctx := context.Background()
	runner := newRepoRunner()
	client := gitio.NewClient(runner, nil)
	root := t.TempDir()
	ws := workspace.New(filepath.Join(root, ".upgrade-analysis"))

	// Stage 1: extract reference snapshots.
	extractor := &extract.Extractor{Client: client, WS: ws}
	refs := models.GitRefs{Current: "main", Comparison: "v10.0.0", Destination: "v15.4.0"}
	if count, err := extractor.Run(ctx, refs); err != nil || count != 8 {
		t.Fatalf("extract: count=%d err=%v", count, err)
	}

	// Stage 2: structured comparison, reading the extracted snapshots back
	// through the document loader.
	comparison, err := jsondoc.LoadSchema(filepath.Join(ws.ComparisonDir(), "config-settings_schema.json"))
	if err != nil {
		t.Fatalf("load comparison schema: %v", err)
	}
	destination, err := jsondoc.LoadSchema(filepath.Join(ws.DestinationDir(), "config-settings_schema.json"))
	if err != nil {
		t.Fatalf("load destination schema: %v", err)
	}
	var current []map[string]interface{}
	{
		doc, err := jsondoc.Parse([]byte(currentSchema))
		if err != nil {
			t.Fatalf("parse current schema: %v", err)
		}
		if current, err = doc.Schema(); err != nil {
			t.Fatalf("current schema shape: %v", err)
		}
	}

	schemaAnalysis := analyze.AnalyzeSchema(comparison, current, destination)

	customs := schemaAnalysis.Pairs[models.PairCustomizations]
	if len(customs.Additions) != 1 || customs.Additions[0].ID != "custom_accent" {
		t.Fatalf("expected custom_accent addition, got %v", customs.Additions)
	}
	upstream := schemaAnalysis.Pairs[models.PairUpstreamChanges]
	if len(upstream.Additions) != 1 || upstream.Additions[0].ID != "gradient" {
		t.Fatalf("expected gradient upstream addition, got %v", upstream.Additions)
	}

	// Stage 3: classification from the primary change list.
	changes, err := client.NameStatus(ctx, "v10.0.0", "main")
	if err != nil {
		t.Fatalf("name-status: %v", err)
	}
	pairSets := map[models.Pair]*gitio.ChangeSet{models.PairCustomizations: changes}
	conflictSet, err := client.NameStatus(ctx, "main", "v15.4.0")
	if err != nil {
		t.Fatalf("name-status: %v", err)
	}
	pairSets[models.PairConflicts] = conflictSet

	inv := classify.New(nil).Classify(ctx, classify.Input{
		Changes:  changes,
		FullDiff: fullDiff,
		PairSets: pairSets,
	})

	if inv.CustomFiles.Total() != 1 {
		t.Errorf("expected 1 custom file, got %d", inv.CustomFiles.Total())
	}
	if len(inv.FilesToRevert) != 1 || inv.FilesToRevert[0] != "locales/fr.json" {
		t.Errorf("expected fr locale revert, got %v", inv.FilesToRevert)
	}
	if len(inv.FilesToPatch) != 1 || inv.FilesToPatch[0] != "layout/theme.liquid" {
		t.Errorf("expected theme.liquid patch, got %v", inv.FilesToPatch)
	}
	mf := inv.ModifiedFiles["layout/theme.liquid"]
	if len(mf.IntegrationPoints) != 1 {
		t.Errorf("expected 1 integration point, got %v", mf.IntegrationPoints)
	}
	// The modified file appears in both the customizations and conflict
	// change lists.
	if len(mf.Comparisons) != 2 {
		t.Errorf("expected 2 pair labels, got %v", mf.Comparisons)
	}
	if !inv.Summary.Validation.ModifiedEqualsRevertPlusPatch {
		t.Error("validation should pass")
	}

	// Stage 4: report assembly.
	report := &models.ChangesReport{
		SettingsSchema: schemaAnalysis,
		SettingsData:   &models.FlatAnalysis{Pairs: map[models.Pair]*models.FlatPairChanges{}},
		LocaleEN:       &models.FlatAnalysis{Pairs: map[models.Pair]*models.FlatPairChanges{}},
		LocaleENSchema: &models.FlatAnalysis{Pairs: map[models.Pair]*models.FlatPairChanges{}},
	}
	assembler := &output.Assembler{
		Inventory: inv,
		Changes:   report,
		Versions: &config.VersionConfig{
			CurrentVersion:     config.VersionRecord{ThemeBase: "dawn-10-custom"},
			ComparisonVersion:  config.VersionRecord{ThemeBase: "dawn-10"},
			DestinationVersion: config.VersionRecord{ThemeBase: "dawn-15"},
		},
		AnalysisDir: ws.Root(),
	}

	markdown := assembler.Render()
	for _, want := range []string{
		"assets/custom-wizard.js",
		"locales/fr.json",
		"Line 6: Custom snippet render",
		"theme version 10.0.0 → 15.4.0",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// The whole pipeline is deterministic end to end.
	if assembler.Render() != markdown {
		t.Error("report rendering should be deterministic")
	}
}
