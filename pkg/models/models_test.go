package models

import (
	"testing"
)

func TestGitRefsForPair(t *testing.T) {
	refs := GitRefs{
		Current:     "main",
		Comparison:  "v10.0.0",
		Destination: "v15.4.0",
	}

	tests := []struct {
		pair    Pair
		base    string
		compare string
	}{
		{PairCustomizations, "v10.0.0", "main"},
		{PairUpstreamChanges, "v10.0.0", "v15.4.0"},
		{PairConflicts, "main", "v15.4.0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.pair), func(t *testing.T) {
			base, compare := refs.ForPair(tt.pair)
			if base != tt.base || compare != tt.compare {
				t.Errorf("ForPair = (%s, %s), want (%s, %s)", base, compare, tt.base, tt.compare)
			}
		})
	}
}

func TestPairSlug(t *testing.T) {
	for _, pair := range AllPairs {
		slug := pair.Slug()
		if slug == "" {
			t.Errorf("pair %s has empty slug", pair)
		}
		for _, r := range slug {
			if r == '_' || r == '/' {
				t.Errorf("slug %q contains a non-filename-friendly rune", slug)
			}
		}
	}
}

func TestModifiedFileAction(t *testing.T) {
	patch := &ModifiedFile{Path: "sections/header.liquid"}
	if patch.Action() != ActionPatchModified {
		t.Errorf("action = %s, want %s", patch.Action(), ActionPatchModified)
	}

	revert := &ModifiedFile{Path: "locales/fr.json", RevertToClean: true}
	if revert.Action() != ActionRevertToClean {
		t.Errorf("action = %s, want %s", revert.Action(), ActionRevertToClean)
	}
}

func TestRemovedFileAction(t *testing.T) {
	tests := []struct {
		name string
		file RemovedFile
		want FileAction
	}{
		{"theme file", RemovedFile{ShouldRestore: true}, ActionRestore},
		{"dev config", RemovedFile{AcceptUpstream: true}, ActionAcceptUpstream},
		{"dev config with customizations", RemovedFile{AcceptUpstream: true, HasCustomizations: true}, ActionPatchDeleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.Action(); got != tt.want {
				t.Errorf("action = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInventoryConsistencyWarnings(t *testing.T) {
	inv := &Inventory{
		ModifiedFiles: map[string]*ModifiedFile{
			"a.liquid": {Path: "a.liquid"},
			"b.liquid": {Path: "b.liquid"},
		},
		FilesToPatch: []string{"a.liquid"},
		// b.liquid missing from both lists
	}

	warnings := inv.ConsistencyWarnings()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}

	inv.FilesToPatch = append(inv.FilesToPatch, "b.liquid")
	if warnings := inv.ConsistencyWarnings(); len(warnings) != 0 {
		t.Errorf("expected no warnings after fixing, got %v", warnings)
	}
}

func TestCustomFileBuckets(t *testing.T) {
	buckets := CustomFileBuckets{
		Assets:   []CustomFile{{Path: "assets/a.js"}},
		Snippets: []CustomFile{{Path: "snippets/b.liquid"}, {Path: "snippets/c.liquid"}},
	}

	if buckets.Total() != 3 {
		t.Errorf("Total = %d, want 3", buckets.Total())
	}
	if got := buckets.Category("snippets"); len(got) != 2 {
		t.Errorf("snippets bucket = %v", got)
	}
	if got := buckets.Category("unknown"); len(got) != 0 {
		t.Errorf("unknown category should map to other, got %v", got)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "output.format", Message: "must be 'human' or 'json'"}
	want := "output.format: must be 'human' or 'json'"
	if err.Error() != want {
		t.Errorf("Error = %q, want %q", err.Error(), want)
	}
}
