// Package output renders the analysis artifacts intended for humans: the
// markdown upgrade report and the per-category JSON change extracts. The
// assembler makes no decisions of its own; every number and list item
// traces back to a record computed by the analyzer or classifier.
package output

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/config"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// documentInfo pairs a changes-report document with its display name and
// repository path.
type documentInfo struct {
	title string
	file  string
}

var analyzedDocuments = []documentInfo{
	{"Settings Schema", "config/settings_schema.json"},
	{"Settings Data", "config/settings_data.json"},
	{"English Locale", "locales/en.default.json"},
	{"English Locale Schema", "locales/en.default.schema.json"},
}

// Assembler renders the markdown upgrade report from the two JSON
// artifacts and the version configuration.
type Assembler struct {
	Inventory   *models.Inventory
	Changes     *models.ChangesReport
	Versions    *config.VersionConfig
	AnalysisDir string
}

func (a *Assembler) labels() (current, comparison, destination string) {
	current, comparison, destination = "current", "comparison base", "destination"
	if a.Versions == nil {
		return
	}
	if v := a.Versions.CurrentVersion.ThemeBase; v != "" {
		current = v
	}
	if v := a.Versions.ComparisonVersion.ThemeBase; v != "" {
		comparison = v
	}
	if v := a.Versions.DestinationVersion.ThemeBase; v != "" {
		destination = v
	}
	return
}

// Render produces the full markdown report
func (a *Assembler) Render() string {
	var b strings.Builder
	current, comparison, destination := a.labels()

	fmt.Fprintf(&b, "# Theme Upgrade Analysis\n\n")
	fmt.Fprintf(&b, "Migration of customizations built on **%s** (current branch: %s) onto **%s**.\n\n",
		comparison, current, destination)

	a.renderPurpose(&b, current, comparison, destination)
	a.renderPatchFormat(&b)
	a.renderSummary(&b)
	a.renderConfigChanges(&b)
	a.renderCustomFiles(&b)
	a.renderModifiedFiles(&b)
	a.renderRemovedFiles(&b)
	a.renderActionLists(&b)
	a.renderIntegrationPoints(&b)

	return b.String()
}

func (a *Assembler) renderPurpose(b *strings.Builder, current, comparison, destination string) {
	fmt.Fprintf(b, "## Purpose\n\n")
	fmt.Fprintf(b, "This report classifies every difference relevant to the upgrade using three comparison sets:\n\n")
	fmt.Fprintf(b, "1. **Our customizations** - %s vs %s: everything we added or changed\n", comparison, current)
	fmt.Fprintf(b, "2. **Upstream changes** - %s vs %s: everything upstream changed between versions\n", comparison, destination)
	fmt.Fprintf(b, "3. **Potential conflicts** - %s vs %s: places where both sides diverged\n\n", current, destination)
}

func (a *Assembler) renderPatchFormat(b *strings.Builder) {
	fmt.Fprintf(b, "## Reading the Patch Files\n\n")
	fmt.Fprintf(b, "Patch files under `%s` use unified diff format:\n\n", path.Join(a.analysisDir(), "patches"))
	fmt.Fprintf(b, "- Lines starting with `-` exist in the base version and are removed\n")
	fmt.Fprintf(b, "- Lines starting with `+` exist in the compare version and are added\n")
	fmt.Fprintf(b, "- `@@` headers locate each change in the file\n\n")
	fmt.Fprintf(b, "A `*-custom.patch` file shows our customizations; a `*-upstream-updates.patch` file shows what upstream changed.\n\n")
}

func (a *Assembler) renderSummary(b *strings.Builder) {
	if a.Inventory == nil {
		return
	}
	s := a.Inventory.Summary
	fmt.Fprintf(b, "## Executive Summary\n\n")
	fmt.Fprintf(b, "| Category | Count |\n|---|---|\n")
	fmt.Fprintf(b, "| Custom files (copy forward) | %d |\n", s.CustomFilesCount)
	fmt.Fprintf(b, "| Modified files | %d |\n", s.ModifiedFilesCount)
	fmt.Fprintf(b, "| Removed files | %d |\n", s.RemovedFilesCount)
	fmt.Fprintf(b, "| Files to revert to clean | %d |\n", s.FilesToRevertCount)
	fmt.Fprintf(b, "| Files to patch (re-apply customizations) | %d |\n", s.FilesToPatchCount)
	fmt.Fprintf(b, "| Files to restore | %d |\n", s.FilesToRestoreCount)
	fmt.Fprintf(b, "| Files to accept from upstream | %d |\n", s.FilesToAcceptCount)
	fmt.Fprintf(b, "| Deleted files needing re-applied customizations | %d |\n\n", s.FilesToPatchDeleted)

	fmt.Fprintf(b, "Validation:\n\n")
	fmt.Fprintf(b, "- %s modified files = revert + patch\n", checkMark(s.Validation.ModifiedEqualsRevertPlusPatch))
	fmt.Fprintf(b, "- %s removed files = restore + accept\n\n", checkMark(s.Validation.RemovedEqualsRestorePlusAccept))
}

func checkMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗ WARNING:"
}

func (a *Assembler) renderConfigChanges(b *strings.Builder) {
	if a.Changes == nil {
		return
	}
	fmt.Fprintf(b, "## Configuration Changes\n\n")

	analyses := []struct {
		doc    documentInfo
		schema *models.SchemaAnalysis
		flat   *models.FlatAnalysis
	}{
		{analyzedDocuments[0], a.Changes.SettingsSchema, nil},
		{analyzedDocuments[1], nil, a.Changes.SettingsData},
		{analyzedDocuments[2], nil, a.Changes.LocaleEN},
		{analyzedDocuments[3], nil, a.Changes.LocaleENSchema},
	}

	for _, entry := range analyses {
		fmt.Fprintf(b, "### %s (`%s`)\n\n", entry.doc.title, entry.doc.file)
		switch {
		case entry.schema != nil:
			a.renderSchemaCounts(b, entry.schema)
		case entry.flat != nil:
			a.renderFlatCounts(b, entry.flat)
		default:
			fmt.Fprintf(b, "Not analyzed.\n\n")
			continue
		}
		safe := strings.ReplaceAll(entry.doc.file, "/", "-")
		fmt.Fprintf(b, "Patches: `%s`, `%s`\n\n",
			path.Join(a.analysisDir(), "json-patches", safe+"-custom.patch"),
			path.Join(a.analysisDir(), "json-patches", safe+"-upstream-updates.patch"))
	}
}

func (a *Assembler) renderSchemaCounts(b *strings.Builder, analysis *models.SchemaAnalysis) {
	for _, pair := range models.AllPairs {
		pc, ok := analysis.Pairs[pair]
		if !ok {
			continue
		}
		adds, mods, rems, sections := pc.Counts()
		fmt.Fprintf(b, "- **%s**: %d additions, %d modifications", pair.Describe(), adds, mods)
		if rems > 0 {
			fmt.Fprintf(b, ", %d removals", rems)
		}
		if sections > 0 {
			fmt.Fprintf(b, ", %d new sections", sections)
		}
		fmt.Fprintf(b, "\n")
		if vc, ok := analysis.ThemeInfoChanges[pair]; ok {
			fmt.Fprintf(b, "  - theme version %s → %s\n", vc.Old, vc.New)
		}
	}
	fmt.Fprintf(b, "\n")
}

func (a *Assembler) renderFlatCounts(b *strings.Builder, analysis *models.FlatAnalysis) {
	for _, pair := range models.AllPairs {
		pc, ok := analysis.Pairs[pair]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "- **%s**: %d additions, %d modifications\n",
			pair.Describe(), len(pc.Additions), len(pc.Modifications))
	}
	fmt.Fprintf(b, "\n")
}

func (a *Assembler) renderCustomFiles(b *strings.Builder) {
	if a.Inventory == nil {
		return
	}
	buckets := &a.Inventory.CustomFiles
	fmt.Fprintf(b, "## Custom Files (%d)\n\n", buckets.Total())
	fmt.Fprintf(b, "These files exist only on the current branch and are copied onto the new base as-is.\n\n")

	for _, name := range models.CategoryNames {
		files := buckets.Category(name)
		if len(files) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s (%d)\n\n", capitalize(name), len(files))
		for _, f := range sortedCustomFiles(files) {
			fmt.Fprintf(b, "- `%s`\n", f.Path)
		}
		fmt.Fprintf(b, "\n")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedCustomFiles(files []models.CustomFile) []models.CustomFile {
	out := make([]models.CustomFile, len(files))
	copy(out, files)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (a *Assembler) renderModifiedFiles(b *strings.Builder) {
	if a.Inventory == nil {
		return
	}
	fmt.Fprintf(b, "## Modified Files (%d)\n\n", len(a.Inventory.ModifiedFiles))

	paths := make([]string, 0, len(a.Inventory.ModifiedFiles))
	for p := range a.Inventory.ModifiedFiles {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Fprintf(b, "### Revert to Clean (%d)\n\n", len(a.Inventory.FilesToRevert))
	for _, p := range paths {
		mf := a.Inventory.ModifiedFiles[p]
		if !mf.RevertToClean {
			continue
		}
		fmt.Fprintf(b, "- `%s` - %s\n", p, mf.Reason)
	}

	fmt.Fprintf(b, "\n### Re-apply Customizations (%d)\n\n", len(a.Inventory.FilesToPatch))
	for _, p := range paths {
		mf := a.Inventory.ModifiedFiles[p]
		if mf.RevertToClean {
			continue
		}
		fmt.Fprintf(b, "- `%s` (%d changed lines)\n", p, len(mf.Changes))
		for _, point := range mf.IntegrationPoints {
			fmt.Fprintf(b, "  - %s\n", point)
		}
	}
	fmt.Fprintf(b, "\n")
}

func (a *Assembler) renderRemovedFiles(b *strings.Builder) {
	if a.Inventory == nil || len(a.Inventory.RemovedFiles) == 0 {
		return
	}
	fmt.Fprintf(b, "## Removed Files (%d)\n\n", len(a.Inventory.RemovedFiles))
	for _, rf := range a.Inventory.RemovedFiles {
		fmt.Fprintf(b, "- `%s` (%s) - %s\n", rf.Path, rf.Action(), rf.Description)
	}
	fmt.Fprintf(b, "\n")
}

func (a *Assembler) renderActionLists(b *strings.Builder) {
	if a.Inventory == nil {
		return
	}
	fmt.Fprintf(b, "## Action Lists\n\n")
	a.renderPathList(b, "Files to revert to clean", a.Inventory.FilesToRevert)
	a.renderPathList(b, "Files to restore from the destination", a.Inventory.FilesToRestore)
	a.renderPathList(b, "Deleted files needing re-applied customizations", a.Inventory.FilesToPatchDeleted)
}

func (a *Assembler) renderPathList(b *strings.Builder, title string, paths []string) {
	fmt.Fprintf(b, "### %s (%d)\n\n", title, len(paths))
	if len(paths) == 0 {
		fmt.Fprintf(b, "None.\n\n")
		return
	}
	for _, p := range paths {
		fmt.Fprintf(b, "- `%s`\n", p)
	}
	fmt.Fprintf(b, "\n")
}

func (a *Assembler) renderIntegrationPoints(b *strings.Builder) {
	if a.Inventory == nil {
		return
	}

	paths := make([]string, 0, len(a.Inventory.ModifiedFiles))
	for p, mf := range a.Inventory.ModifiedFiles {
		if len(mf.IntegrationPoints) > 0 {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	fmt.Fprintf(b, "## Key Integration Points\n\n")
	fmt.Fprintf(b, "Upstream files that wire in custom code. After accepting the destination version of these files, re-apply each listed reference.\n\n")
	for _, p := range paths {
		mf := a.Inventory.ModifiedFiles[p]
		fmt.Fprintf(b, "### `%s`\n\n", p)
		for _, point := range mf.IntegrationPoints {
			fmt.Fprintf(b, "- %s\n", point)
		}
		fmt.Fprintf(b, "\n")
	}
}

func (a *Assembler) analysisDir() string {
	if a.AnalysisDir == "" {
		return ".upgrade-analysis"
	}
	return a.AnalysisDir
}
