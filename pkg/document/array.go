package document

import "fmt"

// Array is an immutable ordered sequence of values. Unlike Object it
// preserves insertion order.
type Array struct {
	items []Value
}

// NewArray builds an Array from plain items, recursively coercing nested
// maps and slices. Construction fails atomically.
func NewArray(items []any) (Array, error) {
	coerced := make([]Value, len(items))
	for i, v := range items {
		cv, err := coerce(v)
		if err != nil {
			return Array{}, fmt.Errorf("index %d: %w", i, err)
		}
		coerced[i] = cv
	}
	return Array{items: coerced}, nil
}

// Len returns the number of items.
func (a Array) Len() int { return len(a.items) }

// Get returns the item at index i, or an IndexError.
func (a Array) Get(i int) (Value, error) {
	if i < 0 || i >= len(a.items) {
		return nil, &IndexError{Index: i, Len: len(a.items)}
	}
	return a.items[i], nil
}

// Items returns a copy of the underlying slice.
func (a Array) Items() []Value {
	out := make([]Value, len(a.items))
	copy(out, a.items)
	return out
}

// with returns a copy with index i replaced by v. The value must already be
// coerced and the index in range.
func (a Array) with(i int, v Value) Array {
	items := make([]Value, len(a.items))
	copy(items, a.items)
	items[i] = v
	return Array{items: items}
}

// without returns a copy with index i removed.
func (a Array) without(i int) Array {
	items := make([]Value, 0, len(a.items)-1)
	items = append(items, a.items[:i]...)
	items = append(items, a.items[i+1:]...)
	return Array{items: items}
}
