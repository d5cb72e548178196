// Package workspace manages the on-disk analysis directory. All artifacts
// of a run live under one root and are overwritten in place, so rerunning
// any stage with unchanged inputs yields byte-identical files.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is the conventional analysis directory inside the theme
// repository.
const DefaultRoot = ".upgrade-analysis"

// Workspace is the analysis artifact directory
type Workspace struct {
	root string
}

// New creates a workspace rooted at root, falling back to DefaultRoot
// when root is empty. The directory does not have to exist yet.
func New(root string) *Workspace {
	if root == "" {
		root = DefaultRoot
	}
	return &Workspace{root: root}
}

// Root returns the workspace root directory
func (w *Workspace) Root() string {
	return w.root
}

// DiffsDir holds the per-pair diff sets
func (w *Workspace) DiffsDir() string {
	return filepath.Join(w.root, "diffs")
}

// PatchesDir holds the per-file revert and re-apply patches
func (w *Workspace) PatchesDir() string {
	return filepath.Join(w.root, "patches")
}

// JSONPatchesDir holds the two patch views of each analyzed JSON document
func (w *Workspace) JSONPatchesDir() string {
	return filepath.Join(w.root, "json-patches")
}

// JSONChangesDir holds the per-document, per-category change extracts
func (w *Workspace) JSONChangesDir() string {
	return filepath.Join(w.root, "json-changes")
}

// ComparisonDir holds the JSON documents extracted from the comparison ref
func (w *Workspace) ComparisonDir() string {
	return filepath.Join(w.root, "theme-comparison")
}

// DestinationDir holds the JSON documents extracted from the destination ref
func (w *Workspace) DestinationDir() string {
	return filepath.Join(w.root, "theme-destination")
}

// EnsureDir creates dir and any missing parents
func (w *Workspace) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories as needed
func (w *Workspace) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// WriteJSON writes v to path as indented JSON with a trailing newline
func (w *Workspace) WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return w.WriteFile(path, append(data, '\n'))
}

// SafeName flattens a repository path into a single file name, e.g.
// "config/settings_schema.json" becomes "config-settings_schema.json".
func SafeName(path string) string {
	replaced := strings.ReplaceAll(path, "/", "-")
	return strings.ReplaceAll(replaced, "\\", "-")
}
