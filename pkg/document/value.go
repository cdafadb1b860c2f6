package document

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Value is any member of the document value union: nil, bool, int64,
// float64, string, Array, Object, *Document, *Link or *Error. Containers
// only ever hold coerced values; plain maps and slices are converted at
// construction time.
type Value = any

// Kind identifies the member of the value union a Value belongs to.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
	KindDocument
	KindLink
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindDocument:
		return "document"
	case KindLink:
		return "link"
	case KindError:
		return "error"
	}
	return "invalid"
}

// KindOf reports the union member of a coerced Value. Values that have not
// passed through a constructor (e.g. a plain map) report KindInvalid.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64:
		return KindInteger
	case float64:
		return KindFloat
	case string:
		return KindString
	case Array:
		return KindArray
	case Object:
		return KindObject
	case *Document:
		return KindDocument
	case *Link:
		return KindLink
	case *Error:
		return KindError
	}
	return KindInvalid
}

type absentType struct{}

func (absentType) String() string { return "absent" }

// Absent is the distinguished "no value" handler result. Under an inline
// transition it signals that the owning document should be removed from the
// tree. It is not a member of the value union and may not be stored in a
// container.
var Absent Value = absentType{}

// IsAbsent reports whether v is the Absent sentinel.
func IsAbsent(v Value) bool {
	_, ok := v.(absentType)
	return ok
}

// Coerce normalizes v into the value union, converting plain maps and
// slices into Object and Array recursively. Values constructed by this
// package pass through unchanged. Codecs use it to lift deserialized
// primitives into the union.
func Coerce(v any) (Value, error) { return coerce(v) }

// coerce normalizes v into the value union. Integer widths collapse to
// int64 and float32 to float64; plain maps and slices become Object and
// Array recursively. Anything else fails with an InvalidValueError.
func coerce(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, &InvalidValueError{Value: v, Reason: "integer overflows int64"}
		}
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, &InvalidValueError{Value: v, Reason: "integer overflows int64"}
		}
		return int64(t), nil
	case float32:
		return float64(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, &InvalidValueError{Value: v, Reason: "malformed number"}
		}
		return f, nil
	case Object, Array, *Document, *Link, *Error:
		return t, nil
	case map[string]any:
		return NewObject(t)
	case []any:
		return NewArray(t)
	}

	// Typed slices ([]string, []int, ...) and string-keyed maps are still
	// plain data; convert them through reflection.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return NewArray(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, &InvalidValueError{Value: v, Reason: "mapping keys must be strings"}
		}
		content := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			content[iter.Key().String()] = iter.Value().Interface()
		}
		return NewObject(content)
	}
	return nil, &InvalidValueError{Value: v, Reason: fmt.Sprintf("type %T is not a document value", v)}
}

// ToNative converts a coerced Value back into plain Go data: Object and
// Document become map[string]any (data entries only, links are dropped),
// Array becomes []any, Error becomes its message slice, and a Link becomes
// a small descriptive map. Primitives pass through unchanged.
func ToNative(v Value) any {
	switch t := v.(type) {
	case Object:
		out := make(map[string]any, len(t.entries))
		for k, entry := range t.entries {
			if KindOf(entry) == KindLink {
				continue
			}
			out[k] = ToNative(entry)
		}
		return out
	case *Document:
		out := make(map[string]any, len(t.entries))
		for k, entry := range t.entries {
			if KindOf(entry) == KindLink {
				continue
			}
			out[k] = ToNative(entry)
		}
		return out
	case Array:
		out := make([]any, len(t.items))
		for i, item := range t.items {
			out[i] = ToNative(item)
		}
		return out
	case *Error:
		return t.Messages()
	case *Link:
		return map[string]any{
			"url":    t.url,
			"action": t.action,
		}
	}
	return v
}
