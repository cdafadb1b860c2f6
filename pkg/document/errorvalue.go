package document

// Error is an immutable server-reported failure: an ordered list of
// messages. It is a value in the tree, not a Go error; when a handler
// returns one, the action engine surfaces it as an ActionError.
type Error struct {
	messages []string
}

// NewError builds an Error from an ordered message list.
func NewError(messages ...string) *Error {
	out := make([]string, len(messages))
	copy(out, messages)
	return &Error{messages: out}
}

// Messages returns a copy of the message list.
func (e *Error) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

// Equal reports equality against another *Error, or against a plain
// []string with the same content (a convenience for comparisons).
func (e *Error) Equal(other any) bool {
	var messages []string
	switch t := other.(type) {
	case *Error:
		if t == nil {
			return false
		}
		messages = t.messages
	case []string:
		messages = t
	default:
		return false
	}
	if len(messages) != len(e.messages) {
		return false
	}
	for i, m := range e.messages {
		if messages[i] != m {
			return false
		}
	}
	return true
}
