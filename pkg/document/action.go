package document

import (
	"context"
	"strings"
)

// Verbs whose actions default to an inline transition when the link does
// not declare one.
var inlineVerbs = map[string]bool{
	"put":    true,
	"patch":  true,
	"delete": true,
}

// Action performs an action by invoking one of the links in the document
// tree.
//
// keys addresses the link: either a dotted string like "rows.123.edit"
// (resolved best-effort with ParsePath), a Path, or a plain slice of
// strings and ints. Strict descent then locates the link and the nearest
// enclosing Document on the path, which owns any structural update.
//
// The result is the new root after an inline transition (Absent if the
// whole document was removed), or the handler's detached result when the
// action navigates away. d is never mutated; on any failure it remains the
// caller's valid, unchanged tree.
func (d *Document) Action(ctx context.Context, keys any, params Params) (Value, error) {
	path, err := resolveKeys(d, keys)
	if err != nil {
		return nil, err
	}

	// Strict descent. Track the most recent Document seen and the key
	// prefix consumed to reach it: link invocations are attributed to the
	// nearest enclosing Document, never to an intervening Object or Array.
	node := Value(d)
	owner := d
	var ownerPath Path
	for i, key := range path {
		next, err := getKey(node, key)
		if err != nil {
			return nil, err
		}
		node = next
		if doc, ok := node.(*Document); ok {
			owner = doc
			ownerPath = path[:i+1]
		}
	}

	link, ok := node.(*Link)
	if !ok {
		return nil, &NotLinkError{Kind: KindOf(node)}
	}

	ret, err := link.Invoke(ctx, owner, params)
	if err != nil {
		return nil, err
	}
	if e, ok := ret.(*Error); ok {
		return nil, &ActionError{Messages: e.Messages()}
	}

	transition := link.transition
	if transition == "" && inlineVerbs[strings.ToLower(link.action)] {
		transition = TransitionInline
	}

	if transition == TransitionInline {
		if IsAbsent(ret) {
			return DeleteAt(d, ownerPath)
		}
		return SetAt(d, ownerPath, ret)
	}
	// Navigating away: the result is detached and the original tree is
	// untouched.
	return ret, nil
}

// resolveKeys normalizes the keys argument of Action into a Path.
func resolveKeys(d *Document, keys any) (Path, error) {
	switch t := keys.(type) {
	case string:
		return ParsePath(d, t), nil
	case Path:
		return NewPath(t...)
	case []any:
		return NewPath(t...)
	case []string:
		raw := make([]any, len(t))
		for i, s := range t {
			raw[i] = s
		}
		return NewPath(raw...)
	case []int:
		raw := make([]any, len(t))
		for i, n := range t {
			raw[i] = n
		}
		return NewPath(raw...)
	}
	return nil, &ArgumentError{Reason: "keys must be a dotted string or a slice of strings and ints"}
}
