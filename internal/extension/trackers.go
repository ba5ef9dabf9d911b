package extension

import (
	"fmt"
	"reflect"
)

// ListTracker mirrors contributions into a slice. Single contributions are
// appended as their bare value, tuples as their []any argument list.
//
// By default it reports AllowRemoveAll false: once attached, the slice is the
// only copy of the contributions and RemoveAll on the point leaves it alone.
type ListTracker struct {
	list           *[]any
	allowRemoveAll bool
}

// NewListTracker returns a tracker appending to *list.
func NewListTracker(list *[]any) *ListTracker {
	return &ListTracker{list: list}
}

// SetAllowRemoveAll overrides the remove-all policy. It must be called before
// the tracker is attached.
func (t *ListTracker) SetAllowRemoveAll(allow bool) *ListTracker {
	t.allowRemoveAll = allow
	return t
}

// AllowRemoveAll implements RemoveAllPolicy.
func (t *ListTracker) AllowRemoveAll() bool { return t.allowRemoveAll }

// OnAddExtension implements Adder.
func (t *ListTracker) OnAddExtension(c Contribution) error {
	if c.IsTuple() {
		*t.list = append(*t.list, c.Args())
	} else {
		*t.list = append(*t.list, c.Value())
	}
	return nil
}

// OnRemoveExtension implements Remover. Stored argument lists match on their
// zeroth element unless the removed item is itself an argument list.
func (t *ListTracker) OnRemoveExtension(c Contribution) error {
	item := c.Value()
	if c.IsTuple() {
		item = c.Args()
	}
	_, itemIsList := item.([]any)

	list := *t.list
	for i, stored := range list {
		candidate := stored
		if args, ok := stored.([]any); ok && len(args) > 0 && !itemIsList {
			candidate = args[0]
		}
		if identical(candidate, item) || (itemIsList && sameArgs(candidate, item)) {
			*t.list = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func sameArgs(a, b any) bool {
	x, ok1 := a.([]any)
	y, ok2 := b.([]any)
	if !ok1 || !ok2 || len(x) != len(y) {
		return false
	}
	for i := range x {
		if !identical(x[i], y[i]) {
			return false
		}
	}
	return true
}

// MapTracker mirrors (key, value) contributions into a map. Keys are stored
// in their fmt.Sprint form.
//
// When constructed with a key field, a single-value contribution supplies its
// own key through that field: a map[string]any entry or an exported struct
// field of that name.
//
// It reports AllowRemoveAll false, like ListTracker.
type MapTracker struct {
	target   map[string]any
	keyField string
}

// NewMapTracker returns a tracker writing into m. keyField may be empty.
func NewMapTracker(m map[string]any, keyField string) *MapTracker {
	return &MapTracker{target: m, keyField: keyField}
}

// AllowRemoveAll implements RemoveAllPolicy.
func (t *MapTracker) AllowRemoveAll() bool { return false }

// OnAddExtension implements Adder.
func (t *MapTracker) OnAddExtension(c Contribution) error {
	key, value := t.keyValue(c)
	if key == nil || value == nil {
		return nil
	}
	t.target[fmt.Sprint(key)] = value
	return nil
}

// OnRemoveExtension implements Remover.
func (t *MapTracker) OnRemoveExtension(c Contribution) error {
	key, _ := t.keyValue(Single(c.Value()))
	if key == nil {
		key = c.Value()
	}
	if key == nil {
		return nil
	}
	delete(t.target, fmt.Sprint(key))
	return nil
}

func (t *MapTracker) keyValue(c Contribution) (key, value any) {
	if c.IsTuple() {
		return c.Arg(0), c.Arg(1)
	}
	if t.keyField == "" {
		return c.Value(), nil
	}
	value = c.Value()
	return fieldOf(value, t.keyField), value
}

// fieldOf reads name from a map[string]any or an exported struct field.
func fieldOf(v any, name string) any {
	if m, ok := v.(map[string]any); ok {
		return m[name]
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	f := rv.FieldByName(name)
	if !f.IsValid() || !f.CanInterface() {
		return nil
	}
	return f.Interface()
}
