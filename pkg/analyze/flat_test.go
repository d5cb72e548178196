package analyze

import (
	"testing"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

func TestAnalyzeLocaleCustomPrefixFilter(t *testing.T) {
	comparison := map[string]interface{}{
		"general": map[string]interface{}{"search": "Search"},
	}
	current := map[string]interface{}{
		"general":       map[string]interface{}{"search": "Search"},
		"custom_wizard": map[string]interface{}{"title": "Product wizard"},
		"accessibility": map[string]interface{}{"skip": "Skip to content"},
	}
	destination := map[string]interface{}{
		"general": map[string]interface{}{"search": "Search"},
	}

	analysis := AnalyzeLocale(comparison, current, destination, "custom_")
	custom := analysis.Pairs[models.PairCustomizations]

	// Only the custom-prefixed addition counts as a customization; the
	// stock key added locally is ignored on this pair.
	if len(custom.Additions) != 1 || custom.Additions[0].Key != "custom_wizard" {
		t.Fatalf("expected only custom_wizard addition, got %v", custom.Additions)
	}
	if custom.Additions[0].Kind != models.KindAddition {
		t.Errorf("expected addition kind, got %s", custom.Additions[0].Kind)
	}

	// The conflict pair has no prefix filter: both locally added keys are
	// absent on the destination side, but flat comparisons never report
	// removals, so the pair stays empty.
	conflicts := analysis.Pairs[models.PairConflicts]
	if len(conflicts.Additions) != 0 || len(conflicts.Modifications) != 0 {
		t.Errorf("expected empty conflict pair, got %+v", conflicts)
	}
}

func TestAnalyzeLocaleModificationNoPrefixRequired(t *testing.T) {
	comparison := map[string]interface{}{
		"general": map[string]interface{}{"search": "Search"},
	}
	current := map[string]interface{}{
		"general": map[string]interface{}{"search": "Find products"},
	}
	destination := map[string]interface{}{
		"general": map[string]interface{}{"search": "Search"},
	}

	analysis := AnalyzeLocale(comparison, current, destination, "custom_")
	custom := analysis.Pairs[models.PairCustomizations]

	if len(custom.Modifications) != 1 {
		t.Fatalf("expected 1 modification, got %d", len(custom.Modifications))
	}
	mod := custom.Modifications[0]
	if mod.Key != "general" || mod.Kind != models.KindModification {
		t.Errorf("unexpected modification: %+v", mod)
	}
	if mod.OldValue == nil || mod.NewValue == nil {
		t.Error("modification should carry both old and new values")
	}
}

func TestAnalyzeSettingsDataScalarDriftIgnored(t *testing.T) {
	comparison := map[string]interface{}{
		"current": "Default",
		"presets": map[string]interface{}{"Default": map[string]interface{}{}},
	}
	current := map[string]interface{}{
		"current": "Custom preset",
		"presets": map[string]interface{}{
			"Default": map[string]interface{}{},
			"Custom":  map[string]interface{}{},
		},
		"custom_feature_flag": true,
	}
	destination := map[string]interface{}{
		"current": "Default",
		"presets": map[string]interface{}{"Default": map[string]interface{}{}},
	}

	analysis := AnalyzeSettingsData(comparison, current, destination, "custom_")
	custom := analysis.Pairs[models.PairCustomizations]

	// Scalar drift in a stock key is noise on the customizations pair.
	for _, mod := range custom.Modifications {
		if mod.Key == "current" {
			t.Error("scalar stock-key drift should not be a customization")
		}
	}
	// Container values still count.
	found := false
	for _, mod := range custom.Modifications {
		if mod.Key == "presets" {
			found = true
		}
	}
	if !found {
		t.Errorf("container modification should be recorded, got %v", custom.Modifications)
	}
	if len(custom.Additions) != 1 || custom.Additions[0].Key != "custom_feature_flag" {
		t.Errorf("expected custom_feature_flag addition, got %v", custom.Additions)
	}

	// Other pairs keep every difference, including the scalar one.
	conflicts := analysis.Pairs[models.PairConflicts]
	foundScalar := false
	for _, mod := range conflicts.Modifications {
		if mod.Key == "current" {
			foundScalar = true
		}
	}
	if !foundScalar {
		t.Errorf("conflict pair should record scalar drift, got %v", conflicts.Modifications)
	}
}

func TestAnalyzeFlatValueOrderSensitive(t *testing.T) {
	// Flat documents compare values with ordered deep equality: a
	// reordered array is a real difference here, unlike in the schema
	// entry comparison.
	comparison := map[string]interface{}{
		"sections": []interface{}{"header", "footer"},
	}
	current := map[string]interface{}{
		"sections": []interface{}{"footer", "header"},
	}
	destination := map[string]interface{}{
		"sections": []interface{}{"header", "footer"},
	}

	analysis := AnalyzeSettingsData(comparison, current, destination, "custom_")
	custom := analysis.Pairs[models.PairCustomizations]
	if len(custom.Modifications) != 1 || custom.Modifications[0].Key != "sections" {
		t.Errorf("expected order-sensitive modification of sections, got %v", custom.Modifications)
	}
}

func TestAnalyzeFlatPairIndependence(t *testing.T) {
	comparison := map[string]interface{}{"a": "1"}
	current := map[string]interface{}{"a": "1", "custom_b": "2"}
	destination := map[string]interface{}{"a": "1", "c": "3"}

	analysis := AnalyzeLocale(comparison, current, destination, "custom_")

	custom := analysis.Pairs[models.PairCustomizations]
	if len(custom.Additions) != 1 || custom.Additions[0].Key != "custom_b" {
		t.Errorf("customizations pair: got %v", custom.Additions)
	}

	upstream := analysis.Pairs[models.PairUpstreamChanges]
	if len(upstream.Additions) != 1 || upstream.Additions[0].Key != "c" {
		t.Errorf("upstream pair: got %v", upstream.Additions)
	}

	conflicts := analysis.Pairs[models.PairConflicts]
	if len(conflicts.Additions) != 1 || conflicts.Additions[0].Key != "c" {
		t.Errorf("conflict pair: got %v", conflicts.Additions)
	}
	for pair, pc := range analysis.Pairs {
		for _, add := range pc.Additions {
			if add.Comparison != pair {
				t.Errorf("record in pair %s labeled %s", pair, add.Comparison)
			}
		}
	}
}
