// Package gitio is the version-control collaborator for upgrade analysis.
// The analysis needs exactly three operations from git: retrieve a file's
// content as of a ref, list changed paths with status between two refs,
// and produce a unified diff between two refs optionally restricted to a
// path pattern.
package gitio

import (
	"context"
	"strings"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/logging"
)

// ChangeSet groups changed paths by status for one comparison pair
type ChangeSet struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// Total returns the number of changed paths in the set
func (cs *ChangeSet) Total() int {
	return len(cs.Added) + len(cs.Modified) + len(cs.Deleted)
}

// Client wraps a Runner with the operations the analysis consumes
type Client struct {
	runner Runner
	logger logging.Logger
}

// NewClient creates a git client. A nil logger disables warning output.
func NewClient(runner Runner, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Client{runner: runner, logger: logger}
}

// Show retrieves a file's full content as of the given ref
func (c *Client) Show(ctx context.Context, ref, path string) (string, error) {
	out, stderr, err := c.runner.Run(ctx, "show", ref+":"+path)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			c.logger.Warn(ctx, "git show failed", logging.Fields{"ref": ref, "path": path, "stderr": msg})
		}
		return "", err
	}
	return out, nil
}

// NameStatus lists changed paths with status between two refs
func (c *Client) NameStatus(ctx context.Context, base, compare string) (*ChangeSet, error) {
	out, err := c.NameStatusText(ctx, base, compare)
	if err != nil {
		return nil, err
	}
	return ParseNameStatus(out), nil
}

// NameStatusText returns the raw `git diff --name-status` output, for
// writing to a diff-set artifact.
func (c *Client) NameStatusText(ctx context.Context, base, compare string) (string, error) {
	out, stderr, err := c.runner.Run(ctx, "diff", "--name-status", base+".."+compare)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			c.logger.Warn(ctx, "git diff --name-status failed", logging.Fields{"base": base, "compare": compare, "stderr": msg})
		}
		return "", err
	}
	return out, nil
}

// Diff produces a unified diff between two refs. An empty pattern diffs
// everything. A non-zero exit is logged as a warning, not returned as an
// error: an empty diff is a legitimate outcome and must not halt a batch.
func (c *Client) Diff(ctx context.Context, base, compare, pattern string) (string, error) {
	args := []string{"diff", base + ".." + compare}
	if pattern != "" {
		args = append(args, "--", pattern)
	}

	out, stderr, err := c.runner.Run(ctx, args...)
	if err != nil {
		c.logger.Warn(ctx, "git diff exited non-zero", logging.Fields{
			"base": base, "compare": compare, "pattern": pattern,
			"stderr": strings.TrimSpace(stderr),
		})
	} else if msg := strings.TrimSpace(stderr); msg != "" {
		c.logger.Warn(ctx, "git diff wrote to stderr", logging.Fields{
			"base": base, "compare": compare, "stderr": msg,
		})
	}
	return out, nil
}

// ParseNameStatus parses `git diff --name-status` output into a ChangeSet.
// Only plain A/M/D entries are tracked; rename and copy records are ignored
// because the theme history never uses them.
func ParseNameStatus(text string) *ChangeSet {
	cs := &ChangeSet{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		status := parts[0]
		path := strings.TrimSpace(parts[1])
		if path == "" {
			continue
		}

		switch status {
		case "A":
			cs.Added = append(cs.Added, path)
		case "M":
			cs.Modified = append(cs.Modified, path)
		case "D":
			cs.Deleted = append(cs.Deleted, path)
		}
	}
	return cs
}
