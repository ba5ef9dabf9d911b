// Package di is a small property-based dependency injector.
//
// An Injector maps ids to factories. Inject fills the nil injectable fields of
// a target from those factories: struct fields tagged `inject:"id"` (an empty
// id means the field name) and present-but-nil entries of a map[string]any.
// Targets implementing Binder declare extra field-to-id bindings which are
// applied first. Fields that already hold a value are never overwritten.
//
// Missing ids are not errors; FindInstance returns nil and the field keeps
// its zero value.
package di
