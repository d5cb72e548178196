package output

import (
	"path/filepath"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/workspace"
)

// ExtractChangeFiles splits the merged changes report into one JSON file
// per document, comparison pair, and change category, for focused review.
// Empty categories produce no file. Returns the paths written.
func ExtractChangeFiles(ws *workspace.Workspace, report *models.ChangesReport) ([]string, error) {
	var written []string

	write := func(doc string, pair models.Pair, category string, v interface{}) error {
		name := doc + "-" + pair.Slug() + "-" + category + ".json"
		p := filepath.Join(ws.JSONChangesDir(), name)
		if err := ws.WriteJSON(p, v); err != nil {
			return err
		}
		written = append(written, p)
		return nil
	}

	if report.SettingsSchema != nil {
		for _, pair := range models.AllPairs {
			pc, ok := report.SettingsSchema.Pairs[pair]
			if !ok {
				continue
			}
			if len(pc.Additions) > 0 {
				if err := write("settings_schema", pair, "additions", pc.Additions); err != nil {
					return written, err
				}
			}
			if len(pc.Modifications) > 0 {
				if err := write("settings_schema", pair, "modifications", pc.Modifications); err != nil {
					return written, err
				}
			}
			if len(pc.Removals) > 0 {
				if err := write("settings_schema", pair, "removals", pc.Removals); err != nil {
					return written, err
				}
			}
			if len(pc.NewSections) > 0 {
				if err := write("settings_schema", pair, "new-sections", pc.NewSections); err != nil {
					return written, err
				}
			}
		}
	}

	flatDocs := []struct {
		name     string
		analysis *models.FlatAnalysis
	}{
		{"settings_data", report.SettingsData},
		{"locale_en", report.LocaleEN},
		{"locale_en_schema", report.LocaleENSchema},
	}
	for _, doc := range flatDocs {
		if doc.analysis == nil {
			continue
		}
		for _, pair := range models.AllPairs {
			pc, ok := doc.analysis.Pairs[pair]
			if !ok {
				continue
			}
			if len(pc.Additions) > 0 {
				if err := write(doc.name, pair, "additions", pc.Additions); err != nil {
					return written, err
				}
			}
			if len(pc.Modifications) > 0 {
				if err := write(doc.name, pair, "modifications", pc.Modifications); err != nil {
					return written, err
				}
			}
		}
	}

	return written, nil
}
