package document

import "fmt"

// Document is the root hypermedia type. It expresses the data the client
// may access and, through its links, the actions the client may perform.
// A Document is never mutated in place: actions and path writes return a
// new Document sharing all untouched substructure.
type Document struct {
	url     string
	title   string
	entries map[string]Value
}

// NewDocument builds a Document, recursively coercing nested plain maps and
// slices in content. url and title default to empty strings.
func NewDocument(url, title string, content map[string]any) (*Document, error) {
	entries := make(map[string]Value, len(content))
	for key, v := range content {
		coerced, err := coerce(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		entries[key] = coerced
	}
	return &Document{url: url, title: title, entries: entries}, nil
}

// URL returns the canonical URL the document was retrieved from.
func (d *Document) URL() string { return d.url }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.entries[key]
	return ok
}

// Get returns the value stored under key, or a KeyError.
func (d *Document) Get(key string) (Value, error) {
	v, ok := d.entries[key]
	if !ok {
		return nil, &KeyError{Key: key}
	}
	return v, nil
}

// Keys returns the iteration order: non-link entries alphabetically, then
// link entries alphabetically.
func (d *Document) Keys() []string { return sortedKeys(d.entries) }

// Data returns a view containing only the non-link entries.
func (d *Document) Data() Object { return Object{entries: filterEntries(d.entries, false)} }

// Links returns a view containing only the link entries.
func (d *Document) Links() Object { return Object{entries: filterEntries(d.entries, true)} }

// with returns a copy with key set to v, keeping url and title.
func (d *Document) with(key string, v Value) *Document {
	entries := make(map[string]Value, len(d.entries)+1)
	for k, existing := range d.entries {
		entries[k] = existing
	}
	entries[key] = v
	return &Document{url: d.url, title: d.title, entries: entries}
}

// without returns a copy with key removed, keeping url and title.
func (d *Document) without(key string) *Document {
	entries := make(map[string]Value, len(d.entries))
	for k, existing := range d.entries {
		if k != key {
			entries[k] = existing
		}
	}
	return &Document{url: d.url, title: d.title, entries: entries}
}
