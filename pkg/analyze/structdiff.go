package analyze

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// fieldReporter collects the differing leaf paths of a cmp.Diff walk as
// structured field changes instead of an opaque diff string.
type fieldReporter struct {
	path    cmp.Path
	changes []models.FieldChange
}

func (r *fieldReporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *fieldReporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

func (r *fieldReporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	change := models.FieldChange{Path: pathString(r.path)}
	vx, vy := r.path.Last().Values()
	if vx.IsValid() {
		change.Old = vx.Interface()
	}
	if vy.IsValid() {
		change.New = vy.Interface()
	}
	r.changes = append(r.changes, change)
}

// pathString renders a cmp.Path as a compact field path like
// "options[2].label". Transform steps introduced by the ordering
// normalization are not shown.
func pathString(p cmp.Path) string {
	var sb strings.Builder
	for _, step := range p {
		switch s := step.(type) {
		case cmp.MapIndex:
			if sb.Len() > 0 {
				sb.WriteString(".")
			}
			fmt.Fprintf(&sb, "%v", s.Key())
		case cmp.SliceIndex:
			if k := s.Key(); k >= 0 {
				fmt.Fprintf(&sb, "[%d]", k)
			} else {
				xi, yi := s.SplitKeys()
				fmt.Fprintf(&sb, "[%d->%d]", xi, yi)
			}
		}
	}
	if sb.Len() == 0 {
		return "."
	}
	return sb.String()
}

// canonical returns a stable serialization of a JSON value with every
// array normalized by sorting its elements' canonical forms. It is used
// only as a sort key, so ordering differences at any depth can never
// influence the comparison outcome.
func canonical(v interface{}) string {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%q:%s", k, canonical(t[k])))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, canonical(item))
		}
		sort.Strings(parts)
		return "[" + strings.Join(parts, ",") + "]"
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}

// lessValue is a strict weak order over JSON values, consistent with
// order-insensitive equality.
func lessValue(a, b interface{}) bool {
	return canonical(a) < canonical(b)
}

// diffOptions ignores array element order at every depth. Ordering is
// unordered at the map-key level by nature; arrays are additionally
// normalized because the structural diff treats all containers as
// unordered.
func diffOptions() cmp.Options {
	return cmp.Options{cmpopts.SortSlices(lessValue)}
}

// DiffEntries computes the structured field-level differences between two
// setting entries. An empty result means the entries are structurally
// equal up to array ordering.
func DiffEntries(base, compare map[string]interface{}) []models.FieldChange {
	reporter := &fieldReporter{}
	cmp.Diff(base, compare, diffOptions(), cmp.Reporter(reporter))
	sort.Slice(reporter.changes, func(i, j int) bool {
		return reporter.changes[i].Path < reporter.changes[j].Path
	})
	return reporter.changes
}

// EntriesEqual reports structural equality of two entries up to array
// ordering at any depth.
func EntriesEqual(base, compare map[string]interface{}) bool {
	return cmp.Equal(base, compare, diffOptions())
}
