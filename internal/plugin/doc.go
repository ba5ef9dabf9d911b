// Package plugin discovers plugin manifests on disk and installs them into an
// extension registry and injector. Installing a plugin binds its singletons
// and aliases in the injector, then contributes each manifest entry to its
// extension point in order. Plugins whose requires constraint does not admit
// the host version are skipped.
package plugin
