package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Repr renders any document value in a canonical single-line form. Every
// union member keeps its discriminant: a Document, an Object and an Error
// are always distinguishable from the rendering. Mapping entries follow
// the standard iteration order.
func Repr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v)
	return b.String()
}

func writeRepr(b *strings.Builder, v Value) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	case string:
		b.WriteString(strconv.Quote(t))
	case Array:
		b.WriteByte('[')
		for i, item := range t.items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, item)
		}
		b.WriteByte(']')
	case Object:
		writeEntriesRepr(b, t.entries)
	case *Document:
		b.WriteString("Document(url=")
		b.WriteString(strconv.Quote(t.url))
		if t.title != "" {
			b.WriteString(", title=")
			b.WriteString(strconv.Quote(t.title))
		}
		b.WriteString(", content=")
		writeEntriesRepr(b, t.entries)
		b.WriteByte(')')
	case *Link:
		b.WriteString("Link(url=")
		b.WriteString(strconv.Quote(t.url))
		b.WriteString(", action=")
		b.WriteString(strconv.Quote(t.action))
		if t.transition != "" {
			b.WriteString(", transition=")
			b.WriteString(strconv.Quote(t.transition))
		}
		if len(t.fields) > 0 {
			b.WriteString(", fields=[")
			for i, f := range t.fields {
				if i > 0 {
					b.WriteString(", ")
				}
				if f.Required {
					b.WriteString("required(")
					b.WriteString(f.Name)
					b.WriteByte(')')
				} else {
					b.WriteString(f.Name)
				}
			}
			b.WriteByte(']')
		}
		b.WriteByte(')')
	case *Error:
		b.WriteString("Error(messages=[")
		for i, m := range t.messages {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(m))
		}
		b.WriteString("])")
	default:
		fmt.Fprintf(b, "<invalid %T>", v)
	}
}

func writeEntriesRepr(b *strings.Builder, entries map[string]Value) {
	b.WriteByte('{')
	for i, key := range sortedKeys(entries) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(key))
		b.WriteString(": ")
		writeRepr(b, entries[key])
	}
	b.WriteByte('}')
}

func (o Object) String() string    { return Repr(o) }
func (a Array) String() string     { return Repr(a) }
func (d *Document) String() string { return Repr(d) }
func (l *Link) String() string     { return Repr(l) }
func (e *Error) String() string    { return Repr(e) }
