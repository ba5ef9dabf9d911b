package extension

import (
	"fmt"
	"reflect"
	"strings"
)

// Contribution is the value recorded for a single AddExtension call.
type Contribution struct {
	args  []any
	tuple bool
	key   any // zeroth argument as contributed, before resolution
}

// Single wraps a contribution made with exactly one argument.
func Single(v any) Contribution {
	return Contribution{args: []any{v}, key: v}
}

// Tuple wraps a contribution made with zero or several arguments.
func Tuple(vs ...any) Contribution {
	args := make([]any, len(vs))
	copy(args, vs)
	c := Contribution{args: args, tuple: true}
	if len(args) > 0 {
		c.key = args[0]
	}
	return c
}

// contributionOf picks Single or Tuple from the call arity.
func contributionOf(args []any) Contribution {
	if len(args) == 1 {
		return Single(args[0])
	}
	return Tuple(args...)
}

// IsTuple reports whether the contribution was made with an arity other than one.
func (c Contribution) IsTuple() bool { return c.tuple }

// Len returns the number of arguments in the contribution.
func (c Contribution) Len() int { return len(c.args) }

// Value returns the contributed value of a Single. For a Tuple it returns the
// first element, or nil when the tuple is empty.
func (c Contribution) Value() any {
	if len(c.args) == 0 {
		return nil
	}
	return c.args[0]
}

// Key returns the value used to identify the contribution on removal: the
// zeroth argument as it was contributed. Resolution rewrites the arguments
// but never the key.
func (c Contribution) Key() any { return c.key }

// Arg returns the i-th argument, or nil when out of range.
func (c Contribution) Arg(i int) any {
	if i < 0 || i >= len(c.args) {
		return nil
	}
	return c.args[i]
}

// Args returns a copy of the argument list.
func (c Contribution) Args() []any {
	out := make([]any, len(c.args))
	copy(out, c.args)
	return out
}

// Map returns a contribution of the same shape with fn applied to every argument.
func (c Contribution) Map(fn func(any) any) Contribution {
	out := Contribution{args: make([]any, len(c.args)), tuple: c.tuple, key: c.key}
	for i, a := range c.args {
		out.args[i] = fn(a)
	}
	return out
}

func (c Contribution) String() string {
	if !c.tuple {
		return fmt.Sprintf("%v", c.Value())
	}
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// identical reports whether a and b are the same value. Comparable values use
// ==; funcs, maps, slices and channels compare by identity.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return equal(a, b)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Func, reflect.Map, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}

// equal is == that reports false instead of panicking on structs holding
// uncomparable dynamic values.
func equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
