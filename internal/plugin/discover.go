package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/plugboard-dev/plugboard/internal/manifest"
)

// Discover walks dir for plugin manifests. Each manifest is validated against
// the schema and parsed; manifests that fail are reported in the returned
// error while the rest are still returned. When two manifests share a name
// the highest version wins. A missing dir yields no plugins and no error.
//
// The result is sorted by name.
func Discover(dir string) ([]*Plugin, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	byName := make(map[string]*Plugin)
	var problems []error

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() || !isManifestFile(d.Name()) {
			return nil
		}

		p, err := load(path)
		if err != nil {
			problems = append(problems, err)
			return nil
		}

		if existing, ok := byName[p.Name()]; ok && !newer(p, existing) {
			return nil
		}
		byName[p.Name()] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking plugin directory %s: %w", dir, err)
	}

	plugins := make([]*Plugin, 0, len(byName))
	for _, p := range byName {
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name() < plugins[j].Name()
	})

	return plugins, errors.Join(problems...)
}

// Load reads, validates and parses a single manifest.
func Load(path string) (*Plugin, error) {
	return load(path)
}

func load(path string) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	result, err := manifest.Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidManifestError{Path: path, Issues: result.Issues}
	}

	m, err := manifest.ParseBytes(data, path)
	if err != nil {
		return nil, err
	}
	return &Plugin{Manifest: m, Path: path}, nil
}

// newer reports whether a has a higher version than b. Unparseable versions
// never win.
func newer(a, b *Plugin) bool {
	cmp, err := CompareVersions(a.Version(), b.Version())
	return err == nil && cmp > 0
}

// isManifestFile returns true if the filename is a recognized manifest file.
func isManifestFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// InvalidManifestError is returned for manifests that fail schema validation.
type InvalidManifestError struct {
	Path   string
	Issues []manifest.ValidationIssue
}

func (e *InvalidManifestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "manifest %s is invalid", e.Path)
	for _, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %s", issue)
	}
	return b.String()
}
