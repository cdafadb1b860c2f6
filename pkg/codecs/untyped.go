package codecs

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/aretw0/vine/pkg/document"
)

// The core wire format tags containers with "_type" and carries document
// metadata under "_meta". Data keys that would collide with the tags are
// escaped with an extra leading underscore.

var escapedKeyPattern = regexp.MustCompile(`^__+(type|meta)$`)

func escapeKey(key string) string {
	if key == "_type" || key == "_meta" || escapedKeyPattern.MatchString(key) {
		return "_" + key
	}
	return key
}

func unescapeKey(key string) string {
	if escapedKeyPattern.MatchString(key) {
		return key[1:]
	}
	return key
}

// EncodeUntyped lowers a document value into plain maps, slices and
// primitives in the core wire shape, ready for a serializer.
func EncodeUntyped(v document.Value) any {
	switch t := v.(type) {
	case *document.Document:
		out := map[string]any{
			"_type": "document",
			"_meta": map[string]any{"url": t.URL(), "title": t.Title()},
		}
		for _, key := range t.Keys() {
			entry, _ := t.Get(key)
			out[escapeKey(key)] = EncodeUntyped(entry)
		}
		return out
	case document.Object:
		out := make(map[string]any, t.Len())
		for _, key := range t.Keys() {
			entry, _ := t.Get(key)
			out[escapeKey(key)] = EncodeUntyped(entry)
		}
		return out
	case document.Array:
		items := t.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = EncodeUntyped(item)
		}
		return out
	case *document.Link:
		out := map[string]any{
			"_type": "link",
			"url":   t.URL(),
		}
		if t.Action() != "" {
			out["action"] = t.Action()
		}
		if t.Transition() != "" {
			out["transition"] = t.Transition()
		}
		if fields := t.Fields(); len(fields) > 0 {
			encoded := make([]any, len(fields))
			for i, f := range fields {
				if f.Required {
					encoded[i] = map[string]any{"name": f.Name, "required": true}
				} else {
					encoded[i] = f.Name
				}
			}
			out["fields"] = encoded
		}
		return out
	case *document.Error:
		messages := t.Messages()
		out := make([]any, len(messages))
		for i, m := range messages {
			out[i] = m
		}
		return map[string]any{"_type": "error", "messages": out}
	}
	return v
}

// DecodeUntyped lifts plain deserialized data into document values,
// recognizing the "_type" tags, unescaping data keys, resolving relative
// URLs against opts.BaseURL, and binding opts.Handler to every link.
func DecodeUntyped(data any, opts *DecodeOptions) (document.Value, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	return decodeValue(data, opts.BaseURL, opts)
}

func decodeValue(data any, base string, opts *DecodeOptions) (document.Value, error) {
	switch t := data.(type) {
	case map[string]any:
		switch t["_type"] {
		case "document":
			return decodeDocument(t, base, opts)
		case "link":
			return decodeLink(t, base, opts)
		case "error":
			return decodeError(t)
		default:
			content := make(map[string]any, len(t))
			for key, v := range t {
				decoded, err := decodeValue(v, base, opts)
				if err != nil {
					return nil, err
				}
				content[unescapeKey(key)] = decoded
			}
			return document.NewObject(content)
		}
	case []any:
		items := make([]any, len(t))
		for i, v := range t {
			decoded, err := decodeValue(v, base, opts)
			if err != nil {
				return nil, err
			}
			items[i] = decoded
		}
		return document.NewArray(items)
	}
	return document.Coerce(data)
}

func decodeDocument(data map[string]any, base string, opts *DecodeOptions) (document.Value, error) {
	var docURL, title string
	if meta, ok := data["_meta"].(map[string]any); ok {
		if u, ok := meta["url"].(string); ok {
			docURL = u
		}
		if s, ok := meta["title"].(string); ok {
			title = s
		}
	}
	docURL = resolveURL(base, docURL)

	content := make(map[string]any, len(data))
	for key, v := range data {
		if key == "_type" || key == "_meta" {
			continue
		}
		decoded, err := decodeValue(v, docURL, opts)
		if err != nil {
			return nil, err
		}
		content[unescapeKey(key)] = decoded
	}
	return document.NewDocument(docURL, title, content)
}

func decodeLink(data map[string]any, base string, opts *DecodeOptions) (document.Value, error) {
	linkURL, _ := data["url"].(string)
	action, _ := data["action"].(string)
	transition, _ := data["transition"].(string)

	linkOpts := []document.LinkOption{}
	if transition != "" {
		linkOpts = append(linkOpts, document.WithTransition(transition))
	}
	if rawFields, ok := data["fields"].([]any); ok {
		fields := make([]document.Field, 0, len(rawFields))
		for _, raw := range rawFields {
			switch f := raw.(type) {
			case string:
				fields = append(fields, document.NewField(f))
			case map[string]any:
				name, _ := f["name"].(string)
				if name == "" {
					return nil, fmt.Errorf("link field missing name: %v", raw)
				}
				required, _ := f["required"].(bool)
				fields = append(fields, document.Field{Name: name, Required: required})
			default:
				return nil, fmt.Errorf("malformed link field: %v", raw)
			}
		}
		linkOpts = append(linkOpts, document.WithFields(fields...))
	}
	if opts.Handler != nil {
		linkOpts = append(linkOpts, document.WithHandler(opts.Handler))
	}
	return document.NewLink(resolveURL(base, linkURL), action, linkOpts...), nil
}

func decodeError(data map[string]any) (document.Value, error) {
	raw, _ := data["messages"].([]any)
	messages := make([]string, 0, len(raw))
	for _, m := range raw {
		s, ok := m.(string)
		if !ok {
			return nil, fmt.Errorf("error messages must be strings, got %T", m)
		}
		messages = append(messages, s)
	}
	return document.NewError(messages...), nil
}

// resolveURL joins ref against base, tolerating malformed input by
// returning ref unchanged.
func resolveURL(base, ref string) string {
	if base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
