// Package manifest handles parsing and validation of plugin manifests.
// A manifest names a plugin, states which host versions it supports, and
// lists the contributions it makes to extension points together with the
// injector bindings those contributions refer to. Manifests are YAML and are
// validated against the JSON Schema embedded from schema/plugin.schema.json.
package manifest
