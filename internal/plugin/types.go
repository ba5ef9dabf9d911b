package plugin

import "github.com/plugboard-dev/plugboard/internal/manifest"

// Plugin is a manifest found on disk.
type Plugin struct {
	Manifest *manifest.PluginManifest
	Path     string // manifest file
}

// Name returns the manifest name.
func (p *Plugin) Name() string { return p.Manifest.Name }

// Version returns the manifest version.
func (p *Plugin) Version() string { return p.Manifest.Version }

// Installed records what Install contributed so that Uninstall can take it
// back out.
type Installed struct {
	Plugin        *Plugin
	Contributions []Contributed
}

// Contributed is one extension added by Install.
type Contributed struct {
	Point string
	Key   any
}
