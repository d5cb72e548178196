package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"config/settings_schema.json", "config-settings_schema.json"},
		{"locales/en.default.json", "locales-en.default.json"},
		{"plain.json", "plain.json"},
		{`windows\style\path.txt`, "windows-style-path.txt"},
	}

	for _, tt := range tests {
		if got := SafeName(tt.input); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultRoot(t *testing.T) {
	ws := New("")
	if ws.Root() != DefaultRoot {
		t.Errorf("Root = %q, want %q", ws.Root(), DefaultRoot)
	}
}

func TestDirectoryLayout(t *testing.T) {
	ws := New("work")
	dirs := map[string]string{
		"diffs":        ws.DiffsDir(),
		"patches":      ws.PatchesDir(),
		"json-patches": ws.JSONPatchesDir(),
		"json-changes": ws.JSONChangesDir(),
	}
	for name, dir := range dirs {
		if dir != filepath.Join("work", name) {
			t.Errorf("%s dir = %q", name, dir)
		}
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	ws := New(t.TempDir())

	path := filepath.Join(ws.DiffsDir(), "01-comparison-vs-current-file-changes.txt")
	if err := ws.WriteFile(path, []byte("A\tassets/custom.js\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "A\tassets/custom.js\n" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	ws := New(t.TempDir())
	path := filepath.Join(ws.Root(), "report.json")

	value := map[string]interface{}{"b": 2, "a": 1, "nested": map[string]int{"z": 26, "y": 25}}
	if err := ws.WriteJSON(path, value); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.HasSuffix(string(first), "\n") {
		t.Error("JSON output should end with a newline")
	}

	for i := 0; i < 5; i++ {
		if err := ws.WriteJSON(path, value); err != nil {
			t.Fatalf("WriteJSON failed: %v", err)
		}
		again, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(first) != string(again) {
			t.Fatalf("run %d produced different bytes", i)
		}
	}
}
