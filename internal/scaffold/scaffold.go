package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/plugboard-dev/plugboard/internal/manifest"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template sets available under scaffolds/.
const (
	KindPlugin = "plugin"
	KindModule = "module"
)

// DefaultPoint is the extension point scaffolds contribute to.
const DefaultPoint = "url.handlers"

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name        string // e.g., "weather-report"
	Title       string // Derived: "Weather Report"
	Description string // Human-readable description
	Version     string // Semver, e.g., "0.1.0"
	Requires    string // Host constraint, e.g., ">= 0.1.0"
	Point       string // Extension point the route is contributed to
	HandlerID   string // Derived: handler.<name>
	PackageName string // Derived: weatherreport (modules only)
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(name, hostVersion string) *ScaffoldData {
	d := &ScaffoldData{
		Name:      name,
		Title:     cases.Title(language.English).String(strings.ReplaceAll(name, "-", " ")),
		Version:   "0.1.0",
		Requires:  ">= 0.1.0",
		Point:     DefaultPoint,
		HandlerID: "handler." + name,
	}
	d.Description = fmt.Sprintf("The %s plugin", d.Title)
	d.PackageName = strings.ReplaceAll(name, "-", "")

	if v := strings.TrimPrefix(hostVersion, "v"); v != "" && v != "dev" {
		d.Requires = ">= " + v
	}
	return d
}

// Generate writes the kind's templates into outputDir, which must be empty or
// absent. Generated manifests are validated; schema issues come back as
// warnings.
func Generate(kind string, data *ScaffoldData, outputDir string) (*Result, error) {
	templatesDir := path.Join("scaffolds", kind)

	// Verify template set exists in embedded FS.
	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", kind, err)
	}

	// Create output directory.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := path.Join(templatesDir, entry.Name())
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		// Strip .tmpl extension for the output filename.
		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(outputDir, "plugin.yaml")
	if _, err := os.Stat(manifestFile); err == nil {
		valResult, valErr := manifest.ValidateFile(manifestFile)
		if valErr != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate manifest: %v", valErr))
		} else if !valResult.Valid {
			for _, issue := range valResult.Issues {
				result.Warnings = append(result.Warnings, issue.String())
			}
		}
	}

	return result, nil
}
