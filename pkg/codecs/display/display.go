// Package display renders document values for human eyes. Every value
// kind keeps a visible discriminant: documents render with a titled
// header, links with their parameter signature, errors with a marked
// message list.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/vine/pkg/document"
)

const indentStep = "    "

// Renderer renders document values as indented plain text, optionally
// colored for the active terminal.
type Renderer struct {
	profile termenv.Profile
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile sets the color profile. Use termenv.ColorProfile() for the
// current terminal; the default (Ascii) emits no escape codes.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) { r.profile = p }
}

// New creates a Renderer. Output is uncolored unless a profile is set.
func New(opts ...Option) *Renderer {
	r := &Renderer{profile: termenv.Ascii}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the textual rendering of v.
func (r *Renderer) Render(v document.Value) string {
	var b strings.Builder
	r.renderValue(&b, v, "")
	return b.String()
}

func (r *Renderer) renderValue(b *strings.Builder, v document.Value, indent string) {
	switch t := v.(type) {
	case *document.Document:
		header := fmt.Sprintf("<%s %q>", orUntitled(t.Title()), t.URL())
		b.WriteString(r.color(header, "4"))
		r.renderEntries(b, t.Keys(), func(k string) document.Value {
			entry, _ := t.Get(k)
			return entry
		}, indent)
	case document.Object:
		b.WriteString("{")
		r.renderEntries(b, t.Keys(), func(k string) document.Value {
			entry, _ := t.Get(k)
			return entry
		}, indent)
		if t.Len() > 0 {
			b.WriteString("\n" + indent)
		}
		b.WriteString("}")
	case document.Array:
		items := t.Items()
		if len(items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[")
		for _, item := range items {
			b.WriteString("\n" + indent + indentStep)
			r.renderValue(b, item, indent+indentStep)
		}
		b.WriteString("\n" + indent + "]")
	case *document.Link:
		b.WriteString(r.color(linkSignature(t), "6"))
	case *document.Error:
		b.WriteString(r.color("<Error>", "1"))
		for _, m := range t.Messages() {
			b.WriteString("\n" + indent + indentStep + r.color("* "+m, "1"))
		}
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strconv.Quote(t))
	default:
		fmt.Fprintf(b, "%v", t)
	}
}

func (r *Renderer) renderEntries(b *strings.Builder, keys []string, get func(string) document.Value, indent string) {
	for _, key := range keys {
		entry := get(key)
		b.WriteString("\n" + indent + indentStep)
		if link, ok := entry.(*document.Link); ok {
			b.WriteString(r.color(key+linkParams(link), "6"))
			continue
		}
		b.WriteString(key + ": ")
		r.renderValue(b, entry, indent+indentStep)
	}
}

// linkSignature renders a link outside a containing mapping.
func linkSignature(l *document.Link) string {
	return fmt.Sprintf("link(%q, %s)%s", l.URL(), l.Action(), linkParams(l))
}

// linkParams renders the parameter signature: required fields bare,
// optional fields bracketed.
func linkParams(l *document.Link) string {
	parts := make([]string, 0, len(l.Fields()))
	for _, f := range l.Fields() {
		if f.Required {
			parts = append(parts, f.Name)
		} else {
			parts = append(parts, "["+f.Name+"]")
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func orUntitled(title string) string {
	if title == "" {
		return "Document"
	}
	return title
}

func (r *Renderer) color(s, code string) string {
	if r.profile == termenv.Ascii {
		return s
	}
	return termenv.String(s).Foreground(r.profile.Color(code)).String()
}
