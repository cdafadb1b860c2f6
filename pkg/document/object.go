package document

import (
	"fmt"
	"sort"
)

// Object is an immutable mapping of strings to values.
type Object struct {
	entries map[string]Value
}

// NewObject builds an Object from plain content, recursively coercing
// nested maps and slices. Construction fails atomically: no partially
// coerced Object is ever returned.
func NewObject(content map[string]any) (Object, error) {
	entries := make(map[string]Value, len(content))
	for key, v := range content {
		coerced, err := coerce(v)
		if err != nil {
			return Object{}, fmt.Errorf("key %q: %w", key, err)
		}
		entries[key] = coerced
	}
	return Object{entries: entries}, nil
}

// Len returns the number of entries.
func (o Object) Len() int { return len(o.entries) }

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.entries[key]
	return ok
}

// Get returns the value stored under key, or a KeyError.
func (o Object) Get(key string) (Value, error) {
	v, ok := o.entries[key]
	if !ok {
		return nil, &KeyError{Key: key}
	}
	return v, nil
}

// Keys returns the iteration order: non-link entries alphabetically, then
// link entries alphabetically. This order is a pure function of key names
// and value kinds, never of insertion order.
func (o Object) Keys() []string { return sortedKeys(o.entries) }

// Data returns a view containing only the non-link entries.
func (o Object) Data() Object { return Object{entries: filterEntries(o.entries, false)} }

// Links returns a view containing only the link entries.
func (o Object) Links() Object { return Object{entries: filterEntries(o.entries, true)} }

// with returns a copy with key set to v. The value must already be coerced.
func (o Object) with(key string, v Value) Object {
	entries := make(map[string]Value, len(o.entries)+1)
	for k, existing := range o.entries {
		entries[k] = existing
	}
	entries[key] = v
	return Object{entries: entries}
}

// without returns a copy with key removed.
func (o Object) without(key string) Object {
	entries := make(map[string]Value, len(o.entries))
	for k, existing := range o.entries {
		if k != key {
			entries[k] = existing
		}
	}
	return Object{entries: entries}
}

func sortedKeys(entries map[string]Value) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := keyRank(entries[keys[i]]), keyRank(entries[keys[j]])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// keyRank sorts links after everything else.
func keyRank(v Value) int {
	if KindOf(v) == KindLink {
		return 1
	}
	return 0
}

func filterEntries(entries map[string]Value, links bool) map[string]Value {
	out := make(map[string]Value)
	for k, v := range entries {
		if (KindOf(v) == KindLink) == links {
			out[k] = v
		}
	}
	return out
}
