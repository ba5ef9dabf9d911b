package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads and parses the manifest at path.
func Parse(path string) (*PluginManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes parses manifest YAML. path is only used in error messages.
func ParseBytes(data []byte, path string) (*PluginManifest, error) {
	var m PluginManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("manifest %s missing required 'name' field", path)
	}
	for i := range m.Contributions {
		m.Contributions[i].Args = normalizeArgs(m.Contributions[i].Args)
	}
	return &m, nil
}

// normalizeArgs turns YAML's nested map types into map[string]any so that
// contributions look the same whether they come from a manifest or from Go.
func normalizeArgs(args []any) []any {
	for i, a := range args {
		args[i] = normalizeYAML(a)
	}
	return args
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
