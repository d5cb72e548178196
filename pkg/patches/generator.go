// Package patches produces the textual diff artifacts of an analysis run:
// per-pair diff sets, per-file revert and re-apply patches, and the two
// patch views of each analyzed JSON document.
package patches

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/extract"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/gitio"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/logging"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/workspace"
)

// DiffPatterns are the per-language restrictions generated alongside each
// full diff
var DiffPatterns = []struct {
	Name    string
	Pattern string
}{
	{"liquid", "*.liquid"},
	{"js", "*.js"},
	{"css", "*.css"},
	{"json", "*.json"},
}

// Generator writes diff and patch artifacts into the workspace
type Generator struct {
	Client   *gitio.Client
	WS       *workspace.Workspace
	Logger   logging.Logger
	Progress bool
}

func (g *Generator) logger() logging.Logger {
	if g.Logger == nil {
		return logging.NewNullLogger()
	}
	return g.Logger
}

// GenerateDiffSets writes one diff set per comparison pair: a name-status
// change list, the full unified diff, and one restricted diff per file
// pattern. A pair whose change list cannot be produced is skipped with a
// warning so the remaining pairs still complete.
func (g *Generator) GenerateDiffSets(ctx context.Context, refs models.GitRefs) error {
	if err := g.WS.EnsureDir(g.WS.DiffsDir()); err != nil {
		return err
	}

	for i, pair := range models.AllPairs {
		base, compare := refs.ForPair(pair)
		prefix := fmt.Sprintf("%02d-%s", i+1, pair.Slug())

		nameStatus, err := g.Client.NameStatusText(ctx, base, compare)
		if err != nil {
			g.logger().Warn(ctx, "skipping diff set", logging.Fields{
				"pair": string(pair), "base": base, "compare": compare,
			})
			continue
		}
		if err := g.writeDiffFile(prefix+"-file-changes.txt", nameStatus); err != nil {
			return err
		}

		full, err := g.Client.Diff(ctx, base, compare, "")
		if err != nil {
			return err
		}
		if err := g.writeDiffFile(prefix+"-full-diff.patch", full); err != nil {
			return err
		}

		for _, p := range DiffPatterns {
			restricted, err := g.Client.Diff(ctx, base, compare, p.Pattern)
			if err != nil {
				return err
			}
			if err := g.writeDiffFile(prefix+"-"+p.Name+".patch", restricted); err != nil {
				return err
			}
		}

		g.logger().Info(ctx, "diff set written", logging.Fields{
			"pair": string(pair), "base": base, "compare": compare,
		})
	}
	return nil
}

func (g *Generator) writeDiffFile(name, content string) error {
	return g.WS.WriteFile(filepath.Join(g.WS.DiffsDir(), name), []byte(content))
}

// GenerateFilePatches writes one patch per modified file from the
// inventory. Revert files diff the current branch against the destination
// (what accepting upstream will change); patch files diff the comparison
// base against the current branch (the customizations to re-apply).
// Returns the number of revert and patch files written.
func (g *Generator) GenerateFilePatches(ctx context.Context, refs models.GitRefs, inv *models.Inventory) (revertCount, patchCount int, err error) {
	if err := g.WS.EnsureDir(g.WS.PatchesDir()); err != nil {
		return 0, 0, err
	}

	type job struct {
		path          string
		base, compare string
		revert        bool
	}
	var jobs []job
	for _, p := range inv.FilesToRevert {
		jobs = append(jobs, job{p, refs.Current, refs.Destination, true})
	}
	for _, p := range inv.FilesToPatch {
		jobs = append(jobs, job{p, refs.Comparison, refs.Current, false})
	}

	var bar *pb.ProgressBar
	if g.Progress && len(jobs) > 0 {
		bar = pb.StartNew(len(jobs))
		defer bar.Finish()
	}

	for _, j := range jobs {
		content, err := g.Client.Diff(ctx, j.base, j.compare, j.path)
		if err != nil {
			return revertCount, patchCount, err
		}
		if strings.TrimSpace(content) != "" {
			name := workspace.SafeName(j.path) + ".patch"
			if err := g.WS.WriteFile(filepath.Join(g.WS.PatchesDir(), name), []byte(content)); err != nil {
				return revertCount, patchCount, err
			}
			if j.revert {
				revertCount++
			} else {
				patchCount++
			}
		}
		if bar != nil {
			bar.Increment()
		}
	}
	return revertCount, patchCount, nil
}

// GenerateJSONPatches writes the two patch views for each analyzed JSON
// document: the customizations applied on top of the comparison base, and
// the upstream updates between the comparison base and the destination.
// Each patch opens with comment lines naming the versions involved.
func (g *Generator) GenerateJSONPatches(ctx context.Context, refs models.GitRefs, versions PatchLabels) (int, error) {
	if err := g.WS.EnsureDir(g.WS.JSONPatchesDir()); err != nil {
		return 0, err
	}

	written := 0
	for _, file := range extract.DefaultFiles {
		safe := workspace.SafeName(file)

		custom := fmt.Sprintf("# Our customizations to %s\n# Base: %s (%s)\n\n",
			file, versions.ComparisonBase, refs.Comparison)
		n, err := g.writeJSONPatch(ctx, safe+"-custom.patch", custom, refs.Comparison, refs.Current, file)
		if err != nil {
			return written, err
		}
		written += n

		upstream := fmt.Sprintf("# Upstream updates to %s\n# From: %s (%s)\n# To: %s (%s)\n\n",
			file, versions.ComparisonBase, refs.Comparison, versions.DestinationBase, refs.Destination)
		n, err = g.writeJSONPatch(ctx, safe+"-upstream-updates.patch", upstream, refs.Comparison, refs.Destination, file)
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// PatchLabels carries the human-readable version names stamped into JSON
// patch headers.
type PatchLabels struct {
	ComparisonBase  string
	DestinationBase string
}

func (g *Generator) writeJSONPatch(ctx context.Context, name, header, base, compare, file string) (int, error) {
	content, err := g.Client.Diff(ctx, base, compare, file)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(content) == "" {
		return 0, nil
	}
	path := filepath.Join(g.WS.JSONPatchesDir(), name)
	if err := g.WS.WriteFile(path, []byte(header+content)); err != nil {
		return 0, err
	}
	return 1, nil
}
