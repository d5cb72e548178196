// Package analyze implements the three-way structured comparison of the
// theme's JSON documents. Every comparison pair is evaluated independently
// from the same three snapshots, so the result for one pair never depends
// on another.
package analyze

import (
	"fmt"
	"sort"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

const (
	themeInfoName   = "theme_info"
	themeVersionKey = "theme_version"
)

// schemaSnapshot indexes one settings schema by section name. The
// theme_info section is held apart because it is compared by version
// string only, never entry by entry.
type schemaSnapshot struct {
	themeInfo map[string]interface{}
	sections  map[string]map[string]interface{}
}

func newSchemaSnapshot(doc []map[string]interface{}) schemaSnapshot {
	snap := schemaSnapshot{sections: make(map[string]map[string]interface{})}
	for _, section := range doc {
		name, ok := section["name"].(string)
		if !ok || name == "" {
			continue
		}
		if name == themeInfoName {
			snap.themeInfo = section
			continue
		}
		snap.sections[name] = section
	}
	return snap
}

func (s schemaSnapshot) version() string {
	if s.themeInfo == nil {
		return ""
	}
	v, _ := s.themeInfo[themeVersionKey].(string)
	return v
}

// settingsByID indexes a section's settings list by setting id. Entries
// without an id (headers, paragraphs) carry no identity and are skipped.
func settingsByID(section map[string]interface{}) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{})
	list, _ := section["settings"].([]interface{})
	for _, raw := range list {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id, ok := entry["id"].(string)
		if !ok || id == "" {
			continue
		}
		out[id] = entry
	}
	return out
}

func entryString(entry map[string]interface{}, key string) string {
	v, _ := entry[key].(string)
	return v
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnalyzeSchema compares the settings schema across the three snapshots
// and returns the change records for every comparison pair.
func AnalyzeSchema(comparison, current, destination []map[string]interface{}) *models.SchemaAnalysis {
	snaps := map[models.Pair][2]schemaSnapshot{
		models.PairCustomizations:  {newSchemaSnapshot(comparison), newSchemaSnapshot(current)},
		models.PairUpstreamChanges: {newSchemaSnapshot(comparison), newSchemaSnapshot(destination)},
		models.PairConflicts:       {newSchemaSnapshot(current), newSchemaSnapshot(destination)},
	}

	analysis := &models.SchemaAnalysis{
		Pairs:            make(map[models.Pair]*models.SchemaPairChanges),
		ThemeInfoChanges: make(map[models.Pair]models.VersionChange),
	}

	for _, pair := range models.AllPairs {
		base, compare := snaps[pair][0], snaps[pair][1]
		// The conflict pair compares two moving targets; a version note
		// there would only restate the other two.
		if pair != models.PairConflicts {
			if bv, cv := base.version(), compare.version(); bv != cv {
				analysis.ThemeInfoChanges[pair] = models.VersionChange{
					Old:        bv,
					New:        cv,
					Comparison: pair,
				}
			}
		}
		analysis.Pairs[pair] = compareSchemaPair(pair, base, compare)
	}
	return analysis
}

func compareSchemaPair(pair models.Pair, base, compare schemaSnapshot) *models.SchemaPairChanges {
	pc := &models.SchemaPairChanges{
		Additions:     []models.SettingChange{},
		Modifications: []models.SettingChange{},
		Removals:      []models.SettingChange{},
		NewSections:   []models.SectionChange{},
	}

	// Sections present only on the compare side: recorded as a new
	// section, and every entry inside it as an addition.
	for _, name := range sortedNames(compare.sections) {
		if _, ok := base.sections[name]; ok {
			continue
		}
		pc.NewSections = append(pc.NewSections, models.SectionChange{
			Name:        name,
			Comparison:  pair,
			Description: fmt.Sprintf("New section: %s", name),
		})
		entries := settingsByID(compare.sections[name])
		for _, id := range sortedNames(entries) {
			pc.Additions = append(pc.Additions, newSettingChange(pair, name, id, entries[id], models.KindAddition))
		}
	}

	for _, name := range sortedNames(base.sections) {
		compareSection, ok := compare.sections[name]
		if !ok {
			// Whole-section removals carry no per-entry records; file
			// patches already cover them.
			continue
		}
		baseEntries := settingsByID(base.sections[name])
		compareEntries := settingsByID(compareSection)

		for _, id := range sortedNames(compareEntries) {
			if _, ok := baseEntries[id]; !ok {
				pc.Additions = append(pc.Additions, newSettingChange(pair, name, id, compareEntries[id], models.KindAddition))
			}
		}
		if pair == models.PairCustomizations {
			for _, id := range sortedNames(baseEntries) {
				if _, ok := compareEntries[id]; !ok {
					pc.Removals = append(pc.Removals, newSettingChange(pair, name, id, baseEntries[id], models.KindRemoval))
				}
			}
		}
		for _, id := range sortedNames(baseEntries) {
			compareEntry, ok := compareEntries[id]
			if !ok {
				continue
			}
			changes := DiffEntries(baseEntries[id], compareEntry)
			if len(changes) == 0 {
				continue
			}
			mod := newSettingChange(pair, name, id, compareEntry, models.KindModification)
			mod.Changes = changes
			pc.Modifications = append(pc.Modifications, mod)
		}
	}
	return pc
}

func newSettingChange(pair models.Pair, section, id string, entry map[string]interface{}, kind models.ChangeKind) models.SettingChange {
	label := entryString(entry, "label")
	if label == "" {
		label = id
	}
	return models.SettingChange{
		ID:          id,
		Section:     section,
		Comparison:  pair,
		Kind:        kind,
		Type:        entryString(entry, "type"),
		Label:       label,
		Description: settingDescription(pair, kind, section, id),
	}
}

func settingDescription(pair models.Pair, kind models.ChangeKind, section, id string) string {
	switch kind {
	case models.KindAddition:
		switch pair {
		case models.PairCustomizations:
			return fmt.Sprintf("Custom setting added in %s: %s", section, id)
		case models.PairUpstreamChanges:
			return fmt.Sprintf("Upstream added setting in %s: %s", section, id)
		default:
			return fmt.Sprintf("Setting present only on the destination side in %s: %s", section, id)
		}
	case models.KindRemoval:
		return fmt.Sprintf("Setting removed by customization in %s: %s", section, id)
	default:
		switch pair {
		case models.PairCustomizations:
			return fmt.Sprintf("Custom modification in %s: %s", section, id)
		case models.PairUpstreamChanges:
			return fmt.Sprintf("Upstream modified setting in %s: %s", section, id)
		default:
			return fmt.Sprintf("Both sides differ for setting %s in %s", id, section)
		}
	}
}
