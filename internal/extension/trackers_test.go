package extension

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListTracker(t *testing.T) {
	reg := quietRegistry()
	var list []any
	ep := reg.ExtensionPoint("ExtensionsList")

	_ = ep.AddExtension(1)
	_ = ep.AddExtension(2)
	_ = ep.AddExtension(3)

	if err := ep.Track(NewListTracker(&list)); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if diff := cmp.Diff([]any{1, 2, 3}, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if ep.Len() != 0 {
		t.Errorf("point Len() = %d, want 0 once the list tracker owns the data", ep.Len())
	}

	if _, err := ep.RemoveExtension(1); err != nil {
		t.Fatalf("RemoveExtension(1) error = %v", err)
	}
	if diff := cmp.Diff([]any{2, 3}, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	// RemoveAll does not reach the list: the tracker disallows it.
	if err := ep.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if diff := cmp.Diff([]any{2, 3}, list); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	// Later additions pass straight through.
	_ = ep.AddExtension(4)
	if ep.Len() != 0 {
		t.Errorf("point Len() = %d, want 0", ep.Len())
	}
	if diff := cmp.Diff([]any{2, 3, 4}, list); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestListTrackerAllowRemoveAll(t *testing.T) {
	reg := quietRegistry()
	var list []any
	ep := reg.ExtensionPoint("ExtensionsList")

	_ = ep.AddExtension(1)
	_ = ep.AddExtension(2)
	_ = ep.AddExtension(3)

	if err := ep.Track(NewListTracker(&list).SetAllowRemoveAll(true)); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if diff := cmp.Diff([]any{1, 2, 3}, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if err := ep.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("list = %v after RemoveAll, want empty", list)
	}
}

func TestListTrackerTuples(t *testing.T) {
	reg := quietRegistry()
	var list []any
	ep := reg.ExtensionPoint("pairs")
	_ = ep.Track(NewListTracker(&list))

	_ = ep.AddExtension("a", 1)
	_ = ep.AddExtension("solo")
	_ = ep.AddExtension("b", 2)

	want := []any{[]any{"a", 1}, "solo", []any{"b", 2}}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	_, _ = ep.RemoveExtension("a")
	want = []any{"solo", []any{"b", 2}}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestListTrackerRemovesFuncsByIdentity(t *testing.T) {
	reg := quietRegistry()
	var list []any
	ep := reg.ExtensionPoint("funcs")
	_ = ep.Track(NewListTracker(&list))

	first := func() {}
	second := func() {}
	_ = ep.AddExtension(first)
	_ = ep.AddExtension(second)

	_, _ = ep.RemoveExtension(first)
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if reflect.ValueOf(list[0]).Pointer() != reflect.ValueOf(second).Pointer() {
		t.Error("the wrong func was removed")
	}
}

func TestMapTracker(t *testing.T) {
	reg := quietRegistry()
	obj := map[string]any{}
	ep := reg.ExtensionPoint("ExtensionObject")

	_ = ep.AddExtension(1, "one")
	_ = ep.AddExtension(2, "two")
	_ = ep.AddExtension(3, "three")

	if err := ep.Track(NewMapTracker(obj, "")); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	want := map[string]any{"1": "one", "2": "two", "3": "three"}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Fatalf("obj mismatch (-want +got):\n%s", diff)
	}

	_, _ = ep.RemoveExtension(1)
	want = map[string]any{"2": "two", "3": "three"}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Fatalf("obj mismatch (-want +got):\n%s", diff)
	}

	_ = ep.RemoveAll()
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Errorf("obj mismatch (-want +got):\n%s", diff)
	}
}

type widget struct {
	ID    string
	Label string
}

func TestMapTrackerKeyField(t *testing.T) {
	reg := quietRegistry()
	obj := map[string]any{}
	ep := reg.ExtensionPoint("widgets")
	_ = ep.Track(NewMapTracker(obj, "ID"))

	button := &widget{ID: "button", Label: "Press"}
	_ = ep.AddExtension(button)
	_ = ep.AddExtension(map[string]any{"ID": "slider"})
	_ = ep.AddExtension("explicit", "value")
	_ = ep.AddExtension(42) // no key field, ignored

	if obj["button"] != button {
		t.Errorf("obj[button] = %v, want %v", obj["button"], button)
	}
	if _, ok := obj["slider"]; !ok {
		t.Error("obj[slider] missing")
	}
	if obj["explicit"] != "value" {
		t.Errorf("obj[explicit] = %v, want value", obj["explicit"])
	}
	if len(obj) != 3 {
		t.Errorf("len(obj) = %d, want 3", len(obj))
	}

	_, _ = ep.RemoveExtension(button)
	if _, ok := obj["button"]; ok {
		t.Error("obj[button] still present after removing the keyed value")
	}
	_, _ = ep.RemoveExtension("explicit")
	if _, ok := obj["explicit"]; ok {
		t.Error("obj[explicit] still present after removal by key")
	}
}
