package models

import (
	"fmt"
	"time"
)

// CustomFileBuckets groups added files by their top-level theme directory
type CustomFileBuckets struct {
	Assets    []CustomFile `json:"assets"`
	Snippets  []CustomFile `json:"snippets"`
	Templates []CustomFile `json:"templates"`
	Sections  []CustomFile `json:"sections"`
	Layout    []CustomFile `json:"layout"`
	Other     []CustomFile `json:"other"`
}

// CategoryNames lists the bucket names in display order
var CategoryNames = []string{"assets", "snippets", "templates", "sections", "layout", "other"}

// Category returns the files in the named bucket
func (b *CustomFileBuckets) Category(name string) []CustomFile {
	switch name {
	case "assets":
		return b.Assets
	case "snippets":
		return b.Snippets
	case "templates":
		return b.Templates
	case "sections":
		return b.Sections
	case "layout":
		return b.Layout
	default:
		return b.Other
	}
}

// Total returns the number of custom files across all buckets
func (b *CustomFileBuckets) Total() int {
	n := 0
	for _, name := range CategoryNames {
		n += len(b.Category(name))
	}
	return n
}

// Validation captures the classifier's consistency checks. Failures are
// surfaced to the operator as warnings, never as fatal errors.
type Validation struct {
	ModifiedEqualsRevertPlusPatch  bool `json:"modified_equals_revert_plus_patch"`
	RemovedEqualsRestorePlusAccept bool `json:"removed_equals_restore_plus_accept"`
}

// Summary holds the inventory's aggregate counts
type Summary struct {
	CustomFilesCount        int        `json:"custom_files_count"`
	ModifiedFilesCount      int        `json:"modified_files_count"`
	RemovedFilesCount       int        `json:"removed_files_count"`
	FilesToRevertCount      int        `json:"files_to_revert_count"`
	FilesToPatchCount       int        `json:"files_to_patch_modified_count"`
	FilesToRestoreCount     int        `json:"files_to_restore_count"`
	FilesToAcceptCount      int        `json:"files_to_accept_upstream_count"`
	FilesToPatchDeleted     int        `json:"files_to_patch_deleted_count"`
	Validation              Validation `json:"validation"`
}

// Inventory is the file classifier's output artifact: every changed path
// with its migration action, plus derived per-action lists and counts.
type Inventory struct {
	RunID         string                   `json:"run_id"`
	GeneratedAt   time.Time                `json:"generated_at"`
	CustomFiles   CustomFileBuckets        `json:"custom_files"`
	ModifiedFiles map[string]*ModifiedFile `json:"modified_files"`
	RemovedFiles  []RemovedFile            `json:"removed_files"`

	FilesToRevert       []string `json:"files_to_revert_to_clean"`
	FilesToPatch        []string `json:"files_to_patch_modified"`
	FilesToRestore      []string `json:"files_to_restore"`
	FilesToAccept       []string `json:"files_to_accept_upstream"`
	FilesToPatchDeleted []string `json:"files_to_patch_deleted"`

	Summary Summary `json:"summary"`
}

// ConsistencyWarnings checks the inventory invariants and returns one
// message per violated check. The counts must always partition: every
// modified file is either reverted or patched, every removed file is
// either restored or accepted.
func (inv *Inventory) ConsistencyWarnings() []string {
	var warnings []string

	if len(inv.ModifiedFiles) != len(inv.FilesToRevert)+len(inv.FilesToPatch) {
		warnings = append(warnings, fmt.Sprintf(
			"modified files don't add up: total %d, revert %d, patch %d",
			len(inv.ModifiedFiles), len(inv.FilesToRevert), len(inv.FilesToPatch)))
	}

	if len(inv.RemovedFiles) != len(inv.FilesToRestore)+len(inv.FilesToAccept) {
		warnings = append(warnings, fmt.Sprintf(
			"removed files don't add up: total %d, restore %d, accept %d",
			len(inv.RemovedFiles), len(inv.FilesToRestore), len(inv.FilesToAccept)))
	}

	return warnings
}
