package models

// FileAction is the migration action assigned to a changed path
type FileAction string

const (
	// ActionCopy copies a custom file forward onto the new upstream base
	ActionCopy FileAction = "copy"
	// ActionPatchModified re-applies customizations onto the new upstream version
	ActionPatchModified FileAction = "patch_modified"
	// ActionRevertToClean discards customizations and accepts the new upstream version verbatim
	ActionRevertToClean FileAction = "revert_to_clean"
	// ActionRestore restores a deleted theme file from the new upstream version
	ActionRestore FileAction = "restore"
	// ActionAcceptUpstream accepts the new upstream version of a deleted dev/config file
	ActionAcceptUpstream FileAction = "accept_upstream"
	// ActionPatchDeleted accepts the new upstream version and re-applies the old customizations
	ActionPatchDeleted FileAction = "patch_deleted"
)

// LineChange is a single added line captured from a unified diff
type LineChange struct {
	Line    int    `json:"line"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// CustomFile describes a file added on the custom branch that does not
// exist in the upstream base.
type CustomFile struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Comparisons []Pair `json:"comparisons"`
}

// ModifiedFile describes an upstream file carrying local modifications.
// A file marked RevertToClean is always a member of the modified set,
// never of added or deleted.
type ModifiedFile struct {
	Path              string       `json:"path"`
	Changes           []LineChange `json:"changes"`
	IntegrationPoints []string     `json:"integration_points"`
	RevertToClean     bool         `json:"revert_to_clean"`
	Reason            string       `json:"reason,omitempty"`
	Comparisons       []Pair       `json:"comparisons"`
}

// Action returns the migration action for the modified file
func (f *ModifiedFile) Action() FileAction {
	if f.RevertToClean {
		return ActionRevertToClean
	}
	return ActionPatchModified
}

// RemovedFile describes an upstream file deleted on the custom branch
type RemovedFile struct {
	Path              string `json:"path"`
	ShouldRestore     bool   `json:"should_restore"`
	AcceptUpstream    bool   `json:"accept_upstream"`
	HasCustomizations bool   `json:"has_customizations"`
	Description       string `json:"description"`
	Comparisons       []Pair `json:"comparisons"`
}

// Action returns the migration action for the removed file
func (f *RemovedFile) Action() FileAction {
	switch {
	case f.ShouldRestore:
		return ActionRestore
	case f.HasCustomizations:
		return ActionPatchDeleted
	default:
		return ActionAcceptUpstream
	}
}
