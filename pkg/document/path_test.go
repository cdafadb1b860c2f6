package document

import (
	"errors"
	"reflect"
	"testing"

	"github.com/containerd/errdefs"
)

func TestSetAt_GetAt_Roundtrip(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{
		"rows": []any{
			map[string]any{"name": "first"},
			map[string]any{"name": "second"},
		},
		"other": map[string]any{"keep": true},
	})

	updated, err := SetAt(doc, Path{"rows", 1, "name"}, "changed")
	if err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}

	got, err := GetAt(updated, Path{"rows", 1, "name"})
	if err != nil {
		t.Fatalf("GetAt failed: %v", err)
	}
	if got != "changed" {
		t.Errorf("GetAt = %v, want changed", got)
	}

	// Original untouched.
	orig, err := GetAt(doc, Path{"rows", 1, "name"})
	if err != nil || orig != "second" {
		t.Errorf("original tree changed: %v, %v", orig, err)
	}
}

func TestSetAt_SharesUneditedSubtrees(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{
		"rows":  []any{map[string]any{"name": "first"}},
		"other": map[string]any{"keep": true},
	})

	updated, err := SetAt(doc, Path{"rows", 0, "name"}, "changed")
	if err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}

	before, _ := GetAt(doc, Path{"other"})
	after, _ := GetAt(updated, Path{"other"})
	ob, oa := before.(Object), after.(Object)
	if reflect.ValueOf(ob.entries).Pointer() != reflect.ValueOf(oa.entries).Pointer() {
		t.Error("off-path subtree was reallocated instead of shared")
	}
}

func TestSetAt_MissingIntermediate(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{"a": 1})
	_, err := SetAt(doc, Path{"missing", "deep"}, 2)
	if !errors.Is(err, errdefs.ErrNotFound) {
		t.Errorf("SetAt through missing key = %v, want not found", err)
	}
}

func TestDeleteAt(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{
		"rows": []any{"a", "b", "c"},
		"meta": map[string]any{"count": 3},
	})

	t.Run("removes object entry", func(t *testing.T) {
		updated, err := DeleteAt(doc, Path{"meta", "count"})
		if err != nil {
			t.Fatalf("DeleteAt failed: %v", err)
		}
		if _, err := GetAt(updated, Path{"meta", "count"}); !errors.Is(err, errdefs.ErrNotFound) {
			t.Errorf("deleted entry still resolves, err = %v", err)
		}
	})

	t.Run("removes array item", func(t *testing.T) {
		updated, err := DeleteAt(doc, Path{"rows", 1})
		if err != nil {
			t.Fatalf("DeleteAt failed: %v", err)
		}
		rows, _ := GetAt(updated, Path{"rows"})
		if !Equal(rows, []any{"a", "c"}) {
			t.Errorf("rows after delete = %v, want [a c]", rows)
		}
	})

	t.Run("fails on unresolved segment", func(t *testing.T) {
		_, err := DeleteAt(doc, Path{"rows", 9})
		if !errors.Is(err, errdefs.ErrOutOfRange) {
			t.Errorf("DeleteAt out of range = %v, want out of range", err)
		}
	})

	t.Run("empty path removes the root", func(t *testing.T) {
		got, err := DeleteAt(doc, nil)
		if err != nil {
			t.Fatalf("DeleteAt failed: %v", err)
		}
		if !IsAbsent(got) {
			t.Errorf("DeleteAt(root, nil) = %v, want Absent", got)
		}
	})
}

func TestParsePath_CoercesArrayIndexes(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{
		"rows": []any{
			map[string]any{"edit": NewLink("/0/edit", "post")},
			map[string]any{"edit": NewLink("/1/edit", "post")},
		},
	})

	path := ParsePath(doc, "rows.1.edit")
	want := Path{"rows", 1, "edit"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("ParsePath = %v, want %v", path, want)
	}
}

func TestParsePath_TruncatesOnFirstFailure(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{
		"rows": []any{"only one"},
	})

	// "123" cannot be looked up, so the trailing segment stays a raw
	// string. Strict descent is responsible for the real failure.
	path := ParsePath(doc, "rows.123.edit")
	want := Path{"rows", 123, "edit"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("ParsePath = %v, want %v", path, want)
	}

	path = ParsePath(doc, "missing.42.edit")
	want = Path{"missing", "42", "edit"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("ParsePath = %v, want %v", path, want)
	}
}

func TestGetAt_DescendIntoPrimitive(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{"n": 1})
	_, err := GetAt(doc, Path{"n", "deeper"})
	var traverse *TraverseError
	if !errors.As(err, &traverse) {
		t.Fatalf("error = %T, want *TraverseError", err)
	}
	if traverse.Kind != KindInteger {
		t.Errorf("TraverseError kind = %s, want integer", traverse.Kind)
	}
}
