package di

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

// InjectorID is the reserved id bound to the injector itself.
const InjectorID = "injector"

// Factory produces an instance for an id. parent is the object being injected
// into, or nil when the instance is requested directly.
type Factory func(parent any) any

// Binding maps a target field to the factory id that fills it.
type Binding struct {
	Field string
	ID    string
}

// Binder is implemented by targets that bind fields to ids other than their
// own names. Bindings are applied in order before the tagged fields.
type Binder interface {
	InjectBindings() []Binding
}

// Injector wires objects together from named factories.
type Injector struct {
	factories map[string]Factory
	logger    *slog.Logger
}

// New returns an injector holding only the reserved "injector" id.
func New() *Injector {
	i := &Injector{logger: slog.Default()}
	i.Reset()
	return i
}

// SetLogger sets the logger used for skipped assignments.
func (i *Injector) SetLogger(l *slog.Logger) {
	if l != nil {
		i.logger = l
	}
}

// Reset discards every factory except "injector".
func (i *Injector) Reset() {
	i.factories = make(map[string]Factory)
	i.SetSingleton(InjectorID, i)
}

// SetSingleton binds id to a factory that always returns v.
func (i *Injector) SetSingleton(id string, v any) {
	i.SetFactory(id, func(any) any { return v })
}

// SetFactory binds id to f.
func (i *Injector) SetFactory(id string, f Factory) {
	i.factories[id] = f
}

// SetClass binds id to a constructor called afresh on every lookup.
func (i *Injector) SetClass(id string, ctor func() any) {
	i.SetFactory(id, func(any) any { return ctor() })
}

// SetType binds id to a factory returning a new *T on every lookup.
func SetType[T any](i *Injector, id string) {
	i.SetFactory(id, func(any) any { return new(T) })
}

// MakeAlias binds each alias to the factory currently registered for id.
// Later changes to id are not reflected in the aliases. It does nothing when
// no aliases are given or id is unknown.
func (i *Injector) MakeAlias(id string, aliases ...string) {
	if len(aliases) == 0 {
		return
	}
	f, ok := i.factories[id]
	if !ok {
		return
	}
	for _, alias := range aliases {
		i.factories[alias] = f
	}
}

// Has reports whether id has a factory.
func (i *Injector) Has(id string) bool {
	_, ok := i.factories[id]
	return ok
}

// IDs returns the registered ids, sorted.
func (i *Injector) IDs() []string {
	ids := make([]string, 0, len(i.factories))
	for id := range i.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindInstance returns the instance for id, injected, or nil when id has no
// factory or the factory produced nothing.
func (i *Injector) FindInstance(id string, parent any) any {
	f, ok := i.factories[id]
	if !ok || f == nil {
		return nil
	}
	obj := f(parent)
	if isNil(obj) {
		return nil
	}
	// Strings produced by a factory are values, not ids to chase.
	if _, ok := obj.(string); ok {
		return obj
	}
	return i.Inject(obj)
}

// Inject fills the nil injectable fields of target and returns it.
//
// A string target is treated as an id: when it resolves, the instance is
// injected and returned in its place; otherwise the string is returned
// unchanged. Values already present are never re-walked.
func (i *Injector) Inject(target any) any {
	if target == nil {
		return nil
	}
	if id, ok := target.(string); ok {
		inst := i.FindInstance(id, nil)
		if inst == nil {
			return target
		}
		// FindInstance has already injected inst.
		return inst
	}

	switch t := target.(type) {
	case map[string]any:
		i.injectMap(t)
		return target
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return target
	}
	i.injectStruct(target, rv.Elem())
	return target
}

func (i *Injector) injectStruct(target any, sv reflect.Value) {
	if b, ok := target.(Binder); ok {
		for _, binding := range b.InjectBindings() {
			f := sv.FieldByName(binding.Field)
			if !f.IsValid() {
				i.logger.Debug("Binding names an unknown field.", "field", binding.Field, "id", binding.ID)
				continue
			}
			if !isNilField(f) {
				continue
			}
			i.assign(f, binding.Field, i.FindInstance(binding.ID, target))
		}
	}

	for _, field := range schemaOf(sv.Type()) {
		f := sv.Field(field.index)
		if !isNilField(f) {
			continue
		}
		i.assign(f, field.name, i.FindInstance(field.id, target))
	}
}

// injectMap fills entries that are present and nil. Absent keys are left alone.
func (i *Injector) injectMap(m map[string]any) {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v == nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if m[k] != nil {
			continue
		}
		m[k] = i.FindInstance(k, m)
	}
}

func (i *Injector) assign(f reflect.Value, name string, v any) {
	if v == nil || !f.CanSet() {
		return
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(f.Type()) {
		i.logger.Warn("Injected value does not fit field.", "field", name,
			"field_type", f.Type().String(), "value_type", rv.Type().String())
		return
	}
	f.Set(rv)
}

// injectField is one entry of a struct's injection schema.
type injectField struct {
	index int
	name  string
	id    string
}

var schemaCache sync.Map // reflect.Type -> []injectField

// schemaOf lists the exported fields tagged `inject`, in declaration order.
func schemaOf(t reflect.Type) []injectField {
	if cached, ok := schemaCache.Load(t); ok {
		return cached.([]injectField)
	}
	var fields []injectField
	for idx := 0; idx < t.NumField(); idx++ {
		sf := t.Field(idx)
		id, ok := sf.Tag.Lookup("inject")
		if !ok || id == "-" || !sf.IsExported() {
			continue
		}
		if id == "" {
			id = sf.Name
		}
		fields = append(fields, injectField{index: idx, name: sf.Name, id: id})
	}
	schemaCache.Store(t, fields)
	return fields
}

func isNilField(f reflect.Value) bool {
	switch f.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return f.IsNil()
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
