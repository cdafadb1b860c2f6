package document

import (
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
)

// ErrNoHandler is returned when a link constructed without a handler is
// invoked.
var ErrNoHandler = fmt.Errorf("link has no handler: %w", errdefs.ErrFailedPrecondition)

// InvalidValueError reports a value outside the document value union handed
// to a container constructor.
type InvalidValueError struct {
	Value  any
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid value: %s", e.Reason)
	}
	return fmt.Sprintf("invalid value of type %T", e.Value)
}

func (e *InvalidValueError) Unwrap() error { return errdefs.ErrInvalidArgument }

// KeyError reports a missing key in an Object or Document.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string { return fmt.Sprintf("key %q not found", e.Key) }

func (e *KeyError) Unwrap() error { return errdefs.ErrNotFound }

// IndexError reports an Array index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return errdefs.ErrOutOfRange }

// TraverseError reports a path descent into a node that cannot be indexed
// with the given key, e.g. a string key against an Array or any key against
// a primitive.
type TraverseError struct {
	Kind Kind
	Key  any
}

func (e *TraverseError) Error() string {
	return fmt.Sprintf("cannot descend into %s with key %v", e.Kind, e.Key)
}

func (e *TraverseError) Unwrap() error { return errdefs.ErrInvalidArgument }

// ArgumentError reports a malformed keys argument to Document.Action.
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string { return e.Reason }

func (e *ArgumentError) Unwrap() error { return errdefs.ErrInvalidArgument }

// NotLinkError reports that path resolution terminated on something other
// than a Link.
type NotLinkError struct {
	Kind Kind
}

func (e *NotLinkError) Error() string {
	return fmt.Sprintf("can only perform an action on a link, got %s", e.Kind)
}

func (e *NotLinkError) Unwrap() error { return errdefs.ErrFailedPrecondition }

// ValidationError reports one or more parameter validation failures for a
// link invocation. Messages are ordered deterministically by parameter
// name.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid parameters: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return errdefs.ErrInvalidArgument }

// ActionError reports that a link handler returned a server Error value.
// The original tree is left untouched when this is raised.
type ActionError struct {
	Messages []string
}

func (e *ActionError) Error() string {
	return "action failed: " + strings.Join(e.Messages, "; ")
}

func (e *ActionError) Unwrap() error { return errdefs.ErrFailedPrecondition }
