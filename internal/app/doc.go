// Package app wires the host together: logger, injector, extension registry,
// built-in modules and installed plugins. It also owns the HTTP server that
// routes requests to url.handlers contributions.
package app
