package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/gitio"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/workspace"
)

type showRunner struct {
	files map[string]string // "ref:path" -> content
}

func (s *showRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	if len(args) == 2 && args[0] == "show" {
		if content, ok := s.files[args[1]]; ok {
			return content, "", nil
		}
		return "", "fatal: path does not exist", errors.New("exit status 128")
	}
	return "", "", errors.New("unexpected invocation")
}

func TestExtractorRun(t *testing.T) {
	runner := &showRunner{files: map[string]string{}}
	for _, file := range DefaultFiles {
		runner.files["v10.0.0:"+file] = `{"from": "comparison"}`
		runner.files["v15.4.0:"+file] = `{"from": "destination"}`
	}
	// The locale schema did not exist at the comparison ref.
	delete(runner.files, "v10.0.0:locales/en.default.schema.json")

	ws := workspace.New(t.TempDir())
	extractor := &Extractor{Client: gitio.NewClient(runner, nil), WS: ws}

	refs := models.GitRefs{Comparison: "v10.0.0", Destination: "v15.4.0"}
	count, err := extractor.Run(context.Background(), refs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 4 destination documents plus 3 comparison documents.
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}

	data, err := os.ReadFile(filepath.Join(ws.ComparisonDir(), "config-settings_schema.json"))
	if err != nil {
		t.Fatalf("missing extracted document: %v", err)
	}
	if !strings.Contains(string(data), "comparison") {
		t.Errorf("unexpected content: %q", data)
	}

	if _, err := os.Stat(filepath.Join(ws.ComparisonDir(), "locales-en.default.schema.json")); err == nil {
		t.Error("missing source document should not be extracted")
	}
	if _, err := os.Stat(filepath.Join(ws.DestinationDir(), "locales-en.default.schema.json")); err != nil {
		t.Errorf("destination document should still extract: %v", err)
	}
}
