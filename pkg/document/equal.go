package document

// Equal performs a deep structural comparison between two values. Either
// side may be plain Go data (maps, slices, any integer width); it is
// coerced before comparison, so a coerced tree compares equal to the shape
// it was built from. Containers compare by entries only: a Document's url
// and title do not participate, matching the convention that a document is
// interchangeable with its content for comparison purposes.
func Equal(a, b any) bool {
	ca, err := coerce(a)
	if err != nil {
		return false
	}
	cb, err := coerce(b)
	if err != nil {
		return false
	}
	return equalValues(ca, cb)
}

func equalValues(a, b Value) bool {
	// Error accepts a plain string list on either side. Coercion has
	// already turned that shape into an Array of strings, so unwrap it
	// back to messages before comparing.
	if ea, ok := a.(*Error); ok {
		return errorEqual(ea, b)
	}
	if eb, ok := b.(*Error); ok {
		return errorEqual(eb, a)
	}

	ea, aOK := entriesOf(a)
	eb, bOK := entriesOf(b)
	if aOK || bOK {
		if !aOK || !bOK {
			return false
		}
		if len(ea) != len(eb) {
			return false
		}
		for k, va := range ea {
			vb, ok := eb[k]
			if !ok || !equalValues(va, vb) {
				return false
			}
		}
		return true
	}

	switch ta := a.(type) {
	case Array:
		tb, ok := b.(Array)
		if !ok || len(ta.items) != len(tb.items) {
			return false
		}
		for i, va := range ta.items {
			if !equalValues(va, tb.items[i]) {
				return false
			}
		}
		return true
	case *Link:
		tb, ok := b.(*Link)
		return ok && ta.Equal(tb)
	case int64:
		switch tb := b.(type) {
		case int64:
			return ta == tb
		case float64:
			return float64(ta) == tb
		}
		return false
	case float64:
		switch tb := b.(type) {
		case int64:
			return ta == float64(tb)
		case float64:
			return ta == tb
		}
		return false
	}
	return a == b
}

// errorEqual compares an Error against any coerced value: another *Error,
// or an Array holding only strings, which is what a plain message list
// looks like after coercion.
func errorEqual(e *Error, other Value) bool {
	arr, ok := other.(Array)
	if !ok {
		return e.Equal(other)
	}
	messages := make([]string, len(arr.items))
	for i, item := range arr.items {
		s, ok := item.(string)
		if !ok {
			return false
		}
		messages[i] = s
	}
	return e.Equal(messages)
}

// entriesOf reports the entry map of a mapping-shaped value. Document and
// Object are interchangeable here.
func entriesOf(v Value) (map[string]Value, bool) {
	switch t := v.(type) {
	case Object:
		return t.entries, true
	case *Document:
		return t.entries, true
	}
	return nil, false
}
