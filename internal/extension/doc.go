// Package extension provides a registry of named extension points.
//
// Producers contribute values to an extension point at any time, before or
// after a consumer exists. Consumers attach a tracker to the point and
// receive a replay of everything contributed so far, in contribution order,
// followed by live notification of later additions and removals.
//
//	reg := extension.NewRegistry()
//	reg.ExtensionPoint("widgets").AddExtension(buttonWidget)
//
//	var widgets []any
//	reg.ExtensionPoint("widgets").Track(extension.NewListTracker(&widgets))
//
// Contributions made with one argument are stored as a Single value; any
// other arity is stored as a Tuple whose zeroth element identifies the
// contribution for removal.
//
// The registry is not safe for concurrent mutation. Tracker callbacks may
// re-enter the registry (for example to contribute to another point); they
// run on the caller's stack.
package extension
