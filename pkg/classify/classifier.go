// Package classify assigns a migration action to every changed file path.
// Every changed path receives exactly one action; a file never appears in
// two action lists.
package classify

import (
	"context"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/gitio"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/logging"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// DevConfigPaths lists development and configuration paths whose deletion
// accepts the destination version instead of restoring: CI config, editor
// config, linting config, license, changelog, and translation automation.
// A trailing slash matches a directory prefix; anything else matches the
// exact path.
var DevConfigPaths = []string{
	".github/",
	".gitignore",
	".prettierrc.json",
	".theme-check.yml",
	".vscode/",
	"LICENSE.md",
	"release-notes.md",
	"translation.yml",
}

// Input carries the change lists and supporting diff text for one run
type Input struct {
	// Changes is the primary change list (old upstream vs current branch)
	Changes *gitio.ChangeSet

	// FullDiff is the raw unified diff for the primary pair. It attaches
	// line-level changes to modified files and decides whether a deleted
	// dev/config file carried customizations worth re-applying.
	FullDiff string

	// PairSets optionally maps each comparison pair to its own change
	// list for provenance labels. A path found in no set is attributed to
	// the customizations pair, since the primary list is exactly that
	// comparison.
	PairSets map[models.Pair]*gitio.ChangeSet
}

// Classifier buckets changed paths into migration actions
type Classifier struct {
	logger logging.Logger
}

// New creates a classifier. A nil logger disables warning output.
func New(logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Classifier{logger: logger}
}

// Classify builds the complete inventory from the change lists
func (c *Classifier) Classify(ctx context.Context, in Input) *models.Inventory {
	inv := &models.Inventory{
		RunID:               uuid.NewString(),
		GeneratedAt:         time.Now().UTC(),
		ModifiedFiles:       make(map[string]*models.ModifiedFile),
		RemovedFiles:        []models.RemovedFile{},
		FilesToRevert:       []string{},
		FilesToPatch:        []string{},
		FilesToRestore:      []string{},
		FilesToAccept:       []string{},
		FilesToPatchDeleted: []string{},
	}

	for _, p := range in.Changes.Added {
		c.addCustomFile(inv, p, in.PairSets)
	}

	lineChanges := ParseUnifiedDiff(in.FullDiff)
	for _, p := range in.Changes.Modified {
		revert, reason := revertRule(p)
		mf := &models.ModifiedFile{
			Path:          p,
			Changes:       []models.LineChange{},
			RevertToClean: revert,
			Reason:        reason,
			Comparisons:   pairsFor(p, in.PairSets, statusModified),
		}
		if ch, ok := lineChanges[p]; ok {
			mf.Changes = ch
			mf.IntegrationPoints = IntegrationPoints(ch)
		}
		inv.ModifiedFiles[p] = mf
	}

	for _, p := range in.Changes.Deleted {
		devConfig := isDevConfig(p)
		rf := models.RemovedFile{
			Path:              p,
			ShouldRestore:     !devConfig,
			AcceptUpstream:    devConfig,
			HasCustomizations: devConfig && hasAddedLines(in.FullDiff, p),
			Comparisons:       pairsFor(p, in.PairSets, statusDeleted),
		}
		rf.Description = removedDescription(rf)
		inv.RemovedFiles = append(inv.RemovedFiles, rf)
	}

	c.deriveLists(inv)
	c.summarize(ctx, inv)
	return inv
}

func (c *Classifier) addCustomFile(inv *models.Inventory, p string, sets map[models.Pair]*gitio.ChangeSet) {
	file := models.CustomFile{
		Path:        p,
		Type:        fileType(p),
		Description: "Custom file: " + path.Base(p),
		Comparisons: pairsFor(p, sets, statusAdded),
	}

	buckets := &inv.CustomFiles
	switch {
	case strings.HasPrefix(p, "assets/"):
		buckets.Assets = append(buckets.Assets, file)
	case strings.HasPrefix(p, "snippets/"):
		buckets.Snippets = append(buckets.Snippets, file)
	case strings.HasPrefix(p, "templates/"):
		buckets.Templates = append(buckets.Templates, file)
	case strings.HasPrefix(p, "sections/"):
		buckets.Sections = append(buckets.Sections, file)
	case strings.HasPrefix(p, "layout/"):
		buckets.Layout = append(buckets.Layout, file)
	default:
		buckets.Other = append(buckets.Other, file)
	}
}

func (c *Classifier) deriveLists(inv *models.Inventory) {
	for p, mf := range inv.ModifiedFiles {
		if mf.RevertToClean {
			inv.FilesToRevert = append(inv.FilesToRevert, p)
		} else {
			inv.FilesToPatch = append(inv.FilesToPatch, p)
		}
	}
	for _, rf := range inv.RemovedFiles {
		switch rf.Action() {
		case models.ActionRestore:
			inv.FilesToRestore = append(inv.FilesToRestore, rf.Path)
		case models.ActionPatchDeleted:
			inv.FilesToAccept = append(inv.FilesToAccept, rf.Path)
			inv.FilesToPatchDeleted = append(inv.FilesToPatchDeleted, rf.Path)
		default:
			inv.FilesToAccept = append(inv.FilesToAccept, rf.Path)
		}
	}

	sort.Strings(inv.FilesToRevert)
	sort.Strings(inv.FilesToPatch)
	sort.Strings(inv.FilesToRestore)
	sort.Strings(inv.FilesToAccept)
	sort.Strings(inv.FilesToPatchDeleted)
}

func (c *Classifier) summarize(ctx context.Context, inv *models.Inventory) {
	inv.Summary = models.Summary{
		CustomFilesCount:    inv.CustomFiles.Total(),
		ModifiedFilesCount:  len(inv.ModifiedFiles),
		RemovedFilesCount:   len(inv.RemovedFiles),
		FilesToRevertCount:  len(inv.FilesToRevert),
		FilesToPatchCount:   len(inv.FilesToPatch),
		FilesToRestoreCount: len(inv.FilesToRestore),
		FilesToAcceptCount:  len(inv.FilesToAccept),
		FilesToPatchDeleted: len(inv.FilesToPatchDeleted),
		Validation: models.Validation{
			ModifiedEqualsRevertPlusPatch:  len(inv.ModifiedFiles) == len(inv.FilesToRevert)+len(inv.FilesToPatch),
			RemovedEqualsRestorePlusAccept: len(inv.RemovedFiles) == len(inv.FilesToRestore)+len(inv.FilesToAccept),
		},
	}

	for _, warning := range inv.ConsistencyWarnings() {
		c.logger.Warn(ctx, "inventory consistency check failed", logging.Fields{"detail": warning})
	}
}

// revertRule decides whether a modified file's customizations are
// discarded instead of re-applied. Non-English locale files are reverted
// because custom features only ship English strings; README.md is
// reverted because the documentation tracks upstream.
func revertRule(p string) (bool, string) {
	if strings.HasPrefix(p, "locales/") && !strings.HasPrefix(p, "locales/en.") {
		return true, "Non-English locale - custom features only support English"
	}
	if p == "README.md" {
		return true, "Documentation tracks upstream - accept the destination version"
	}
	return false, ""
}

func isDevConfig(p string) bool {
	for _, entry := range DevConfigPaths {
		if strings.HasSuffix(entry, "/") {
			if strings.HasPrefix(p, entry) {
				return true
			}
		} else if p == entry {
			return true
		}
	}
	return false
}

func removedDescription(rf models.RemovedFile) string {
	switch rf.Action() {
	case models.ActionRestore:
		return "Theme file deleted locally - restore from the destination version"
	case models.ActionPatchDeleted:
		return "Dev/config file deleted locally but carried customizations - accept the destination version, then re-apply"
	default:
		return "Dev/config file deleted locally - accept the destination version"
	}
}

// hasAddedLines reports whether the file's section of the full diff
// contains any added line, i.e. whether the local branch changed the file
// before (or while) deleting it.
func hasAddedLines(fullDiff, p string) bool {
	section := fileDiffSection(fullDiff, p)
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			return true
		}
	}
	return false
}

func fileDiffSection(fullDiff, p string) string {
	for _, section := range strings.Split(fullDiff, "diff --git ") {
		header, rest, ok := strings.Cut(section, "\n")
		if !ok {
			continue
		}
		if strings.HasSuffix(header, " b/"+p) {
			return rest
		}
	}
	return ""
}

func fileType(p string) string {
	ext := path.Ext(p)
	if ext == "" {
		return "unknown"
	}
	return strings.TrimPrefix(ext, ".")
}

type changeStatus int

const (
	statusAdded changeStatus = iota
	statusModified
	statusDeleted
)

// pairsFor labels a path with every comparison pair whose change list
// contains it with the same status.
func pairsFor(p string, sets map[models.Pair]*gitio.ChangeSet, status changeStatus) []models.Pair {
	var pairs []models.Pair
	for _, pair := range models.AllPairs {
		cs, ok := sets[pair]
		if !ok || cs == nil {
			continue
		}
		var list []string
		switch status {
		case statusAdded:
			list = cs.Added
		case statusModified:
			list = cs.Modified
		default:
			list = cs.Deleted
		}
		for _, candidate := range list {
			if candidate == p {
				pairs = append(pairs, pair)
				break
			}
		}
	}
	if len(pairs) == 0 {
		pairs = []models.Pair{models.PairCustomizations}
	}
	return pairs
}
