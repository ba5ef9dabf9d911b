package manifest

// PluginManifest is the parsed form of a plugin's YAML manifest.
type PluginManifest struct {
	Name          string              `yaml:"name" json:"name"`
	Version       string              `yaml:"version" json:"version"`
	Description   string              `yaml:"description,omitempty" json:"description,omitempty"`
	Requires      string              `yaml:"requires,omitempty" json:"requires,omitempty"`
	Contributions []Contribution      `yaml:"contributions,omitempty" json:"contributions,omitempty"`
	Singletons    map[string]any      `yaml:"singletons,omitempty" json:"singletons,omitempty"`
	Aliases       map[string][]string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Contribution is one entry of a manifest's contributions list: the
// arguments passed to AddExtension on the named extension point.
type Contribution struct {
	Point string `yaml:"point" json:"point"`
	Args  []any  `yaml:"args" json:"args"`
}
