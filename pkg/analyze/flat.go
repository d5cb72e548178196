package analyze

import (
	"fmt"
	"reflect"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// flatRules tunes the customizations pair for one flat document. The
// other two pairs always record every addition and modification.
type flatRules struct {
	noun string
	// addFilter restricts which top-level additions count as
	// customizations.
	addFilter func(key string) bool
	// modFilter restricts which top-level modifications count as
	// customizations.
	modFilter func(key string, value interface{}) bool
}

// AnalyzeLocale compares a locale dictionary across the three snapshots.
// On the customizations pair only keys carrying the custom prefix count
// as additions; removals are never reported for flat documents, so a key
// deleted locally simply drops out of the result.
func AnalyzeLocale(comparison, current, destination map[string]interface{}, customPrefix string) *models.FlatAnalysis {
	rules := flatRules{
		noun: "translation key",
		addFilter: func(key string) bool {
			return hasPrefix(key, customPrefix)
		},
		modFilter: func(string, interface{}) bool { return true },
	}
	return analyzeFlat(comparison, current, destination, rules)
}

// AnalyzeSettingsData compares settings_data.json across the three
// snapshots. Modifications on the customizations pair are only recorded
// for custom-prefixed keys or container values; scalar drift in stock
// keys is presentation noise, not a customization.
func AnalyzeSettingsData(comparison, current, destination map[string]interface{}, customPrefix string) *models.FlatAnalysis {
	rules := flatRules{
		noun: "setting",
		addFilter: func(key string) bool {
			return hasPrefix(key, customPrefix)
		},
		modFilter: func(key string, value interface{}) bool {
			return hasPrefix(key, customPrefix) || isContainer(value)
		},
	}
	return analyzeFlat(comparison, current, destination, rules)
}

func analyzeFlat(comparison, current, destination map[string]interface{}, rules flatRules) *models.FlatAnalysis {
	analysis := &models.FlatAnalysis{Pairs: make(map[models.Pair]*models.FlatPairChanges)}
	type sides struct {
		base, compare map[string]interface{}
	}
	pairSides := map[models.Pair]sides{
		models.PairCustomizations:  {comparison, current},
		models.PairUpstreamChanges: {comparison, destination},
		models.PairConflicts:       {current, destination},
	}
	for _, pair := range models.AllPairs {
		s := pairSides[pair]
		analysis.Pairs[pair] = compareFlatPair(pair, s.base, s.compare, rules)
	}
	return analysis
}

func compareFlatPair(pair models.Pair, base, compare map[string]interface{}, rules flatRules) *models.FlatPairChanges {
	pc := &models.FlatPairChanges{
		Additions:     []models.KeyChange{},
		Modifications: []models.KeyChange{},
	}
	filtered := pair == models.PairCustomizations
	for _, key := range sortedNames(compare) {
		value := compare[key]
		baseValue, exists := base[key]
		if !exists {
			if filtered && !rules.addFilter(key) {
				continue
			}
			pc.Additions = append(pc.Additions, models.KeyChange{
				Key:         key,
				Comparison:  pair,
				Kind:        models.KindAddition,
				Value:       value,
				Description: flatDescription(pair, models.KindAddition, rules.noun, key),
			})
			continue
		}
		if reflect.DeepEqual(baseValue, value) {
			continue
		}
		if filtered && !rules.modFilter(key, value) {
			continue
		}
		pc.Modifications = append(pc.Modifications, models.KeyChange{
			Key:         key,
			Comparison:  pair,
			Kind:        models.KindModification,
			OldValue:    baseValue,
			NewValue:    value,
			Description: flatDescription(pair, models.KindModification, rules.noun, key),
		})
	}
	return pc
}

func flatDescription(pair models.Pair, kind models.ChangeKind, noun, key string) string {
	switch pair {
	case models.PairCustomizations:
		if kind == models.KindAddition {
			return fmt.Sprintf("Custom %s: %s", noun, key)
		}
		return fmt.Sprintf("Customized %s: %s", noun, key)
	case models.PairUpstreamChanges:
		if kind == models.KindAddition {
			return fmt.Sprintf("Upstream added %s: %s", noun, key)
		}
		return fmt.Sprintf("Upstream modified %s: %s", noun, key)
	default:
		if kind == models.KindAddition {
			return fmt.Sprintf("Destination-only %s: %s", noun, key)
		}
		return fmt.Sprintf("Both sides differ for %s: %s", noun, key)
	}
}

func hasPrefix(key, prefix string) bool {
	return prefix != "" && len(key) >= len(prefix) && key[:len(prefix)] == prefix
}

func isContainer(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	default:
		return false
	}
}
