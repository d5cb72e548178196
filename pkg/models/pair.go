package models

// Pair identifies one of the three ordered comparison pairs analyzed during
// an upgrade run. Each pair is an ordered (base, compare) pairing of the
// three theme snapshots: the upstream base the customizations were built on
// (comparison), the customized branch (current), and the upstream release
// being migrated to (destination).
type Pair string

const (
	// PairCustomizations compares the old upstream base against the
	// customized branch: everything we added or changed.
	PairCustomizations Pair = "comparison_vs_current"

	// PairUpstreamChanges compares the old upstream base against the new
	// upstream release: everything upstream changed between versions.
	PairUpstreamChanges Pair = "comparison_vs_destination"

	// PairConflicts compares the customized branch against the new upstream
	// release: places where both sides diverged.
	PairConflicts Pair = "current_vs_destination"
)

// AllPairs lists the three comparison pairs in analysis order.
var AllPairs = []Pair{PairCustomizations, PairUpstreamChanges, PairConflicts}

// Describe returns a short human-readable explanation of the pair.
func (p Pair) Describe() string {
	switch p {
	case PairCustomizations:
		return "Our customizations (old upstream vs current branch)"
	case PairUpstreamChanges:
		return "Upstream changes (old upstream vs new upstream)"
	case PairConflicts:
		return "Potential conflicts (current branch vs new upstream)"
	default:
		return string(p)
	}
}

// Slug returns a filesystem-friendly name for the pair, used in diff set
// and patch file names.
func (p Pair) Slug() string {
	switch p {
	case PairCustomizations:
		return "comparison-vs-current"
	case PairUpstreamChanges:
		return "comparison-vs-destination"
	case PairConflicts:
		return "current-vs-destination"
	default:
		return string(p)
	}
}

// GitRefs holds the resolved git references for the three theme versions.
// Loaded once from the version configuration at startup and passed
// explicitly into every component that needs it.
type GitRefs struct {
	Current        string
	Comparison     string
	Destination    string
	UpstreamRemote string
}

// ForPair returns the (base, compare) refs for a comparison pair.
func (r GitRefs) ForPair(p Pair) (base, compare string) {
	switch p {
	case PairCustomizations:
		return r.Comparison, r.Current
	case PairUpstreamChanges:
		return r.Comparison, r.Destination
	case PairConflicts:
		return r.Current, r.Destination
	default:
		return "", ""
	}
}
