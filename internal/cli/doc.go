// Package cli defines the Cobra command tree for the plugboard CLI. Each file
// in this package registers one top-level command (points, plugin, serve,
// etc.) with the root command. Command implementations delegate to internal
// packages for business logic and only handle flag parsing and I/O formatting.
package cli
