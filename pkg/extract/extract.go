// Package extract retrieves reference snapshots of the analyzed JSON
// documents from the comparison and destination refs into the workspace.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/gitio"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/logging"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/workspace"
)

// DefaultFiles lists the JSON documents extracted for structured analysis
var DefaultFiles = []string{
	"config/settings_schema.json",
	"config/settings_data.json",
	"locales/en.default.json",
	"locales/en.default.schema.json",
}

// Extractor writes reference copies of the analyzed documents
type Extractor struct {
	Client *gitio.Client
	WS     *workspace.Workspace
	Logger logging.Logger
}

// Run extracts every document from both reference versions and returns
// the number of files written. A document missing at a ref is skipped
// with a warning; the extraction never fails a whole run over one absent
// file.
func (e *Extractor) Run(ctx context.Context, refs models.GitRefs) (int, error) {
	logger := e.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	targets := []struct {
		ref string
		dir string
	}{
		{refs.Comparison, e.WS.ComparisonDir()},
		{refs.Destination, e.WS.DestinationDir()},
	}

	extracted := 0
	for _, target := range targets {
		if err := e.WS.EnsureDir(target.dir); err != nil {
			return extracted, err
		}
		for _, file := range DefaultFiles {
			content, err := e.Client.Show(ctx, target.ref, file)
			if err != nil || strings.TrimSpace(content) == "" {
				logger.Warn(ctx, "document not available at ref", logging.Fields{
					"ref": target.ref, "path": file,
				})
				continue
			}

			out := filepath.Join(target.dir, workspace.SafeName(file))
			if err := e.WS.WriteFile(out, []byte(content)); err != nil {
				return extracted, err
			}
			extracted++
			logger.Info(ctx, "extracted document", logging.Fields{
				"ref": target.ref, "path": file, "out": out,
			})
		}
	}
	return extracted, nil
}
