package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node in the tree. Elements are string keys (Object,
// Document) or int indexes (Array).
type Path []any

// NewPath validates and normalizes raw keys into a Path. Integer widths
// collapse to int; any other element type fails with an ArgumentError.
func NewPath(keys ...any) (Path, error) {
	path := make(Path, len(keys))
	for i, key := range keys {
		switch t := key.(type) {
		case string:
			path[i] = t
		case int:
			path[i] = t
		case int64:
			path[i] = int(t)
		default:
			return nil, &ArgumentError{Reason: fmt.Sprintf("path elements must be strings or ints, got %T", key)}
		}
	}
	return path, nil
}

// ParsePath converts dotted notation like "rows.123.edit" into a Path,
// walking the actual tree to decide which segments are array indexes. This
// is a best-effort hint pass: on the first failed lookup the remaining
// segments are left as raw strings, and strict descent later reports the
// authoritative failure.
func ParsePath(root Value, dotted string) Path {
	segments := strings.Split(dotted, ".")
	path := make(Path, len(segments))
	for i, seg := range segments {
		path[i] = seg
	}

	active := root
	for i, seg := range segments {
		key := path[i]
		if _, ok := active.(Array); ok {
			if n, err := strconv.Atoi(seg); err == nil {
				key = n
				path[i] = n
			}
		}
		next, err := getKey(active, key)
		if err != nil {
			break
		}
		active = next
	}
	return path
}

// GetAt descends from root through each path element in order, failing at
// the first segment that does not resolve.
func GetAt(root Value, path Path) (Value, error) {
	node := root
	for _, key := range path {
		next, err := getKey(node, key)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}

// SetAt returns a new root with the node at path replaced by v, coercing v
// into the value union. Every node from the root down to the edit point is
// freshly allocated; everything off the edit path is shared with the
// original. An empty path returns the coerced v itself.
func SetAt(root Value, path Path, v any) (Value, error) {
	if len(path) == 0 {
		return coerce(v)
	}
	child, err := getKey(root, path[0])
	if err != nil {
		return nil, err
	}
	replaced, err := SetAt(child, path[1:], v)
	if err != nil {
		return nil, err
	}
	return setKey(root, path[0], replaced)
}

// DeleteAt returns a new root with the entry at path removed from its
// containing node. An empty path removes the root itself and returns
// Absent. Every path segment must resolve in the existing tree.
func DeleteAt(root Value, path Path) (Value, error) {
	if len(path) == 0 {
		return Absent, nil
	}
	if len(path) == 1 {
		return deleteKey(root, path[0])
	}
	child, err := getKey(root, path[0])
	if err != nil {
		return nil, err
	}
	pruned, err := DeleteAt(child, path[1:])
	if err != nil {
		return nil, err
	}
	return setKey(root, path[0], pruned)
}

func getKey(node Value, key any) (Value, error) {
	switch t := node.(type) {
	case Object:
		k, ok := key.(string)
		if !ok {
			return nil, &KeyError{Key: fmt.Sprint(key)}
		}
		return t.Get(k)
	case *Document:
		k, ok := key.(string)
		if !ok {
			return nil, &KeyError{Key: fmt.Sprint(key)}
		}
		return t.Get(k)
	case Array:
		i, ok := key.(int)
		if !ok {
			return nil, &TraverseError{Kind: KindArray, Key: key}
		}
		return t.Get(i)
	}
	return nil, &TraverseError{Kind: KindOf(node), Key: key}
}

func setKey(node Value, key any, v Value) (Value, error) {
	switch t := node.(type) {
	case Object:
		k, ok := key.(string)
		if !ok {
			return nil, &KeyError{Key: fmt.Sprint(key)}
		}
		return t.with(k, v), nil
	case *Document:
		k, ok := key.(string)
		if !ok {
			return nil, &KeyError{Key: fmt.Sprint(key)}
		}
		return t.with(k, v), nil
	case Array:
		i, ok := key.(int)
		if !ok {
			return nil, &TraverseError{Kind: KindArray, Key: key}
		}
		if i < 0 || i >= t.Len() {
			return nil, &IndexError{Index: i, Len: t.Len()}
		}
		return t.with(i, v), nil
	}
	return nil, &TraverseError{Kind: KindOf(node), Key: key}
}

func deleteKey(node Value, key any) (Value, error) {
	switch t := node.(type) {
	case Object:
		k, ok := key.(string)
		if !ok || !t.Has(k) {
			return nil, &KeyError{Key: fmt.Sprint(key)}
		}
		return t.without(k), nil
	case *Document:
		k, ok := key.(string)
		if !ok || !t.Has(k) {
			return nil, &KeyError{Key: fmt.Sprint(key)}
		}
		return t.without(k), nil
	case Array:
		i, ok := key.(int)
		if !ok {
			return nil, &TraverseError{Kind: KindArray, Key: key}
		}
		if i < 0 || i >= t.Len() {
			return nil, &IndexError{Index: i, Len: t.Len()}
		}
		return t.without(i), nil
	}
	return nil, &TraverseError{Kind: KindOf(node), Key: key}
}
