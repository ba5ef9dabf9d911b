package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/plugin.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of validating a manifest.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one problem found in a manifest. Issues are ordered by
// Path.
type ValidationIssue struct {
	Path    string // JSON pointer into the manifest, e.g. "/contributions/0/point"
	Message string
	Keyword string // failing schema keyword, or the manifest rule for cross-field checks
}

func (i ValidationIssue) String() string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s: %s", path, i.Message)
}

// Rules checked after the schema passes.
const (
	KeywordConstraint = "constraint"
	KeywordAlias      = "alias"
)

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("plugin.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("plugin.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks manifest YAML against the plugin schema and, when the
// shape is right, against the rules the schema cannot express: requires
// must be a semver constraint and alias names must not shadow singletons or
// each other. The error return is for unreadable input only.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	raw = normalizeYAML(raw)

	// The validator wants JSON-decoded values (json.Number for numbers).
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = schemaIssues(ve)
	} else if doc, ok := raw.(map[string]any); ok {
		issues = ruleIssues(doc)
	}

	if len(issues) == 0 {
		return &ValidationResult{Valid: true}, nil
	}
	sort.SliceStable(issues, func(a, b int) bool { return issues[a].Path < issues[b].Path })
	return &ValidationResult{Issues: issues}, nil
}

// ValidateFile reads a file and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// schemaIssues flattens the error tree to its leaves. Missing and unknown
// properties get one issue each, located at the property itself.
func schemaIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		for _, cause := range e.Causes {
			walk(cause)
		}
		if len(e.Causes) > 0 || e.ErrorKind == nil {
			return
		}
		at := pointer(e.InstanceLocation)
		switch k := e.ErrorKind.(type) {
		case *kind.Required:
			for _, name := range k.Missing {
				issues = append(issues, ValidationIssue{Path: at + "/" + escapePointer(name), Message: "is required", Keyword: "required"})
			}
		case *kind.AdditionalProperties:
			for _, name := range k.Properties {
				issues = append(issues, ValidationIssue{Path: at + "/" + escapePointer(name), Message: "is not a manifest field", Keyword: "additionalProperties"})
			}
		default:
			kw := e.ErrorKind.KeywordPath()
			if len(kw) == 0 {
				return
			}
			issues = append(issues, ValidationIssue{
				Path:    at,
				Message: e.ErrorKind.LocalizedString(printer),
				Keyword: kw[len(kw)-1],
			})
		}
	}
	walk(ve)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

// ruleIssues runs the cross-field checks on a schema-valid manifest.
func ruleIssues(doc map[string]any) []ValidationIssue {
	var issues []ValidationIssue

	if req, ok := doc["requires"].(string); ok {
		if _, err := semver.NewConstraint(req); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "/requires",
				Message: fmt.Sprintf("not a version constraint: %v", err),
				Keyword: KeywordConstraint,
			})
		}
	}

	singletons, _ := doc["singletons"].(map[string]any)
	aliases, _ := doc["aliases"].(map[string]any)
	owner := make(map[string]string)
	sources := make([]string, 0, len(aliases))
	for src := range aliases {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		names, _ := aliases[src].([]any)
		for i, n := range names {
			name, _ := n.(string)
			at := fmt.Sprintf("/aliases/%s/%d", escapePointer(src), i)
			switch {
			case name == src:
				issues = append(issues, ValidationIssue{Path: at, Message: "aliases its own source", Keyword: KeywordAlias})
			case hasKey(singletons, name):
				issues = append(issues, ValidationIssue{Path: at, Message: fmt.Sprintf("%q is also a singleton", name), Keyword: KeywordAlias})
			case owner[name] != "":
				issues = append(issues, ValidationIssue{Path: at, Message: fmt.Sprintf("%q is already an alias of %q", name, owner[name]), Keyword: KeywordAlias})
			default:
				owner[name] = src
			}
		}
	}
	return issues
}

func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	parts := make([]string, len(loc))
	for i, p := range loc {
		parts[i] = escapePointer(p)
	}
	return "/" + strings.Join(parts, "/")
}

// escapePointer escapes one JSON pointer token.
func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// normalizeYAML converts decoded YAML to JSON-compatible values. Maps with
// non-string keys are rekeyed by their fmt.Sprint form.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}

func hasKey(m map[string]any, k string) bool {
	_, ok := m[k]
	return ok
}
