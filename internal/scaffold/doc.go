// Package scaffold generates new plugins from embedded templates. It powers
// the "plugboard plugin new" command, producing either a manifest-only plugin
// (plugin.yaml and README.md) or the Go source of a built-in module.
package scaffold
