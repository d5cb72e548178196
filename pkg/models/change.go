package models

import "time"

// ChangeKind categorizes a detected difference
type ChangeKind string

const (
	// KindAddition indicates an entity present only in the compare snapshot
	KindAddition ChangeKind = "addition"
	// KindModification indicates an entity present in both snapshots with differing content
	KindModification ChangeKind = "modification"
	// KindRemoval indicates an entity present only in the base snapshot
	KindRemoval ChangeKind = "removal"
)

// FieldChange records a single differing field inside a setting entry.
// The structured form stays machine-comparable; it is serialized to text
// only at the report-rendering boundary.
type FieldChange struct {
	// Path is the field path inside the entry, e.g. "label" or "options[2].value"
	Path string `json:"path"`

	// Old is the base-side value; nil when the field was added
	Old interface{} `json:"old,omitempty"`

	// New is the compare-side value; nil when the field was removed
	New interface{} `json:"new,omitempty"`
}

// SettingChange is a change record for a single schema setting entry.
// Every record carries the comparison pair that produced it so downstream
// consumers never have to re-derive provenance.
type SettingChange struct {
	ID          string        `json:"id"`
	Section     string        `json:"section"`
	Comparison  Pair          `json:"comparison"`
	Kind        ChangeKind    `json:"kind"`
	Type        string        `json:"type,omitempty"`
	Label       string        `json:"label,omitempty"`
	Changes     []FieldChange `json:"changes,omitempty"`
	Description string        `json:"description"`
}

// SectionChange is a whole-section addition record. Entries inside a new
// section are additionally reported as individual SettingChange additions;
// consumers filter at whichever granularity they need.
type SectionChange struct {
	Name        string `json:"name"`
	Comparison  Pair   `json:"comparison"`
	Description string `json:"description"`
}

// KeyChange is a change record for a flat key-value document (locale
// dictionaries, settings data).
type KeyChange struct {
	Key         string      `json:"key"`
	Comparison  Pair        `json:"comparison"`
	Kind        ChangeKind  `json:"kind"`
	Value       interface{} `json:"value,omitempty"`
	OldValue    interface{} `json:"old_value,omitempty"`
	NewValue    interface{} `json:"new_value,omitempty"`
	Description string      `json:"description"`
}

// VersionChange notes a theme_info version difference for one pair
type VersionChange struct {
	Old        string `json:"old"`
	New        string `json:"new"`
	Comparison Pair   `json:"comparison"`
}

// SchemaPairChanges groups the results of one ordered comparison of a
// schema-shaped document. Results of different pairs are never merged.
type SchemaPairChanges struct {
	Additions     []SettingChange `json:"additions"`
	Modifications []SettingChange `json:"modifications"`
	Removals      []SettingChange `json:"removals,omitempty"`
	NewSections   []SectionChange `json:"new_sections,omitempty"`
}

// Counts returns entry-level totals for the pair. Entries belonging to
// wholly new sections are counted in Additions; NewSections is the
// section-level count.
func (c *SchemaPairChanges) Counts() (additions, modifications, removals, sections int) {
	return len(c.Additions), len(c.Modifications), len(c.Removals), len(c.NewSections)
}

// SchemaAnalysis is the three-way comparison result for a schema document
type SchemaAnalysis struct {
	Pairs            map[Pair]*SchemaPairChanges `json:"pairs"`
	ThemeInfoChanges map[Pair]VersionChange      `json:"theme_info_changes,omitempty"`
}

// FlatPairChanges groups the results of one ordered comparison of a flat
// key-value document. Flat comparisons report no removals; this asymmetry
// with the schema comparator is deliberate.
type FlatPairChanges struct {
	Additions     []KeyChange `json:"additions"`
	Modifications []KeyChange `json:"modifications"`
}

// FlatAnalysis is the three-way comparison result for a flat document
type FlatAnalysis struct {
	Pairs map[Pair]*FlatPairChanges `json:"pairs"`
}

// ChangesReport is the merged structured-diff artifact across all four
// analyzed JSON documents.
type ChangesReport struct {
	RunID          string          `json:"run_id"`
	GeneratedAt    time.Time       `json:"generated_at"`
	SettingsSchema *SchemaAnalysis `json:"settings_schema"`
	SettingsData   *FlatAnalysis   `json:"settings_data"`
	LocaleEN       *FlatAnalysis   `json:"locale_en"`
	LocaleENSchema *FlatAnalysis   `json:"locale_en_schema"`
	ComparisonSets map[Pair]string `json:"comparison_sets"`
}
