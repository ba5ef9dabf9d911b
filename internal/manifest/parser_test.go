package manifest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestParse_BaseFields(t *testing.T) {
	tests := []struct {
		file    string
		name    string
		version string
		nContr  int
	}{
		{"valid-greetings.yaml", "greetings", "1.2.0", 3},
		{"valid-minimal.yaml", "minimal", "0.0.1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			m, err := Parse(testPath(tt.file))
			if err != nil {
				t.Fatalf("Parse(%s) error: %v", tt.file, err)
			}
			if m.Name != tt.name {
				t.Errorf("Name = %q, want %q", m.Name, tt.name)
			}
			if m.Version != tt.version {
				t.Errorf("Version = %q, want %q", m.Version, tt.version)
			}
			if len(m.Contributions) != tt.nContr {
				t.Errorf("len(Contributions) = %d, want %d", len(m.Contributions), tt.nContr)
			}
		})
	}
}

func TestParse_Contributions(t *testing.T) {
	m, err := Parse(testPath("valid-greetings.yaml"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	first := m.Contributions[0]
	if first.Point != "url.handlers" {
		t.Errorf("Point = %q, want url.handlers", first.Point)
	}
	if diff := cmp.Diff([]any{"^/greet/en$", "handler.greet.en"}, first.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}

	lang := m.Contributions[2].Args[1]
	obj, ok := lang.(map[string]any)
	if !ok {
		t.Fatalf("Args[1] = %T, want map[string]any", lang)
	}
	if obj["label"] != "English" || obj["default"] != true {
		t.Errorf("Args[1] = %v", obj)
	}
}

func TestParse_SingletonsAndAliases(t *testing.T) {
	m, err := Parse(testPath("valid-greetings.yaml"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m.Singletons["greeting"] != "Hello" {
		t.Errorf("Singletons[greeting] = %v, want Hello", m.Singletons["greeting"])
	}
	settings, ok := m.Singletons["settings"].(map[string]any)
	if !ok {
		t.Fatalf("Singletons[settings] = %T, want map[string]any", m.Singletons["settings"])
	}
	if settings["retries"] != 3 {
		t.Errorf("settings.retries = %v, want 3", settings["retries"])
	}
	if diff := cmp.Diff([]string{"salutation", "hi"}, m.Aliases["greeting"]); diff != "" {
		t.Errorf("Aliases[greeting] mismatch (-want +got):\n%s", diff)
	}
	if m.Requires != ">= 0.1.0" {
		t.Errorf("Requires = %q", m.Requires)
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse(testPath("nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestParse_MissingName(t *testing.T) {
	_, err := Parse(testPath("invalid-missing-name.yaml"))
	if err == nil {
		t.Fatal("expected error for manifest without a name")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error %q does not mention name", err)
	}
}

func TestParseBytes_InvalidYAML(t *testing.T) {
	_, err := ParseBytes([]byte("name: [unclosed"), "inline")
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "inline") {
		t.Errorf("error %q does not mention the source", err)
	}
}

func TestNormalizeYAML(t *testing.T) {
	in := map[any]any{
		1:     "one",
		"two": []any{map[any]any{"x": 1}},
	}
	got := normalizeYAML(in)
	want := map[string]any{
		"1":   "one",
		"two": []any{map[string]any{"x": 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalizeYAML() mismatch (-want +got):\n%s", diff)
	}
}
