// Package openapi decodes OpenAPI 3 descriptions into link-bearing
// documents: every operation becomes a Link whose fields mirror the
// operation's parameters.
package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/vine/pkg/codecs"
	"github.com/aretw0/vine/pkg/document"
)

// MediaType is the canonical media type for OpenAPI descriptions.
const MediaType = "application/vnd.oai.openapi+json"

// Codec decodes OpenAPI 3 documents. It is decode-only.
type Codec struct{}

// New returns an OpenAPI codec.
func New() *Codec { return &Codec{} }

func (c *Codec) MediaTypes() []string {
	return []string{MediaType, "application/vnd.oai.openapi"}
}

// Encode is not supported: vine consumes OpenAPI descriptions but never
// produces them.
func (c *Codec) Encode(v document.Value) ([]byte, error) {
	return nil, fmt.Errorf("openapi codec is decode-only: %w", errdefs.ErrNotImplemented)
}

// Decode parses an OpenAPI 3 description (JSON or YAML) into a Document.
// Operations become links keyed by operationId, grouped under their first
// tag; untagged operations sit at the top level.
func (c *Codec) Decode(data []byte, opts ...codecs.DecodeOption) (document.Value, error) {
	options := codecs.NewDecodeOptions(opts...)

	loader := openapi3.NewLoader()
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI description: %w", err)
	}

	base := options.BaseURL
	if len(spec.Servers) > 0 && spec.Servers[0].URL != "" {
		base = resolve(base, spec.Servers[0].URL)
	}

	title := ""
	description := ""
	if spec.Info != nil {
		title = spec.Info.Title
		description = spec.Info.Description
	}

	content := map[string]any{}
	if description != "" {
		content["description"] = description
	}
	grouped := map[string]map[string]any{}

	if spec.Paths != nil {
		paths := spec.Paths.Map()
		keys := make([]string, 0, len(paths))
		for p := range paths {
			keys = append(keys, p)
		}
		sort.Strings(keys)

		for _, path := range keys {
			item := paths[path]
			for method, op := range item.Operations() {
				name := linkName(op, method, path)
				link := operationLink(op, method, resolve(base, path), options)
				tag := ""
				if len(op.Tags) > 0 {
					tag = op.Tags[0]
				}
				if tag == "" {
					content[name] = link
					continue
				}
				if grouped[tag] == nil {
					grouped[tag] = map[string]any{}
				}
				grouped[tag][name] = link
			}
		}
	}
	for tag, links := range grouped {
		content[tag] = links
	}

	return document.NewDocument(base, title, content)
}

func linkName(op *openapi3.Operation, method, path string) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	slug := strings.Trim(strings.NewReplacer("/", "_", "{", "", "}", "").Replace(path), "_")
	return strings.ToLower(method) + "_" + slug
}

func operationLink(op *openapi3.Operation, method, url string, options *codecs.DecodeOptions) *document.Link {
	var fields []document.Field
	for _, ref := range op.Parameters {
		if ref.Value == nil {
			continue
		}
		fields = append(fields, document.Field{
			Name:     ref.Value.Name,
			Required: ref.Value.Required,
		})
	}
	fields = append(fields, bodyFields(op)...)

	linkOpts := []document.LinkOption{document.WithFields(fields...)}
	if options.Handler != nil {
		linkOpts = append(linkOpts, document.WithHandler(options.Handler))
	}
	return document.NewLink(url, strings.ToLower(method), linkOpts...)
}

// bodyFields flattens the JSON request body's top-level properties into
// link fields.
func bodyFields(op *openapi3.Operation) []document.Field {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]document.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, document.Field{Name: name, Required: required[name]})
	}
	return fields
}

func resolve(base, ref string) string {
	if base == "" {
		return ref
	}
	if ref == "" {
		return base
	}
	if strings.Contains(ref, "://") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
