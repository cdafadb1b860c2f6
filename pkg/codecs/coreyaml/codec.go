// Package coreyaml implements the core wire format over YAML.
package coreyaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/vine/pkg/codecs"
	"github.com/aretw0/vine/pkg/document"
)

// MediaType is the canonical media type for core YAML payloads.
const MediaType = "application/coreapi+yaml"

// Codec encodes and decodes the core wire shape over YAML. Plain YAML
// payloads decode to untagged objects and arrays.
type Codec struct{}

// New returns a core YAML codec.
func New() *Codec { return &Codec{} }

func (c *Codec) MediaTypes() []string {
	return []string{MediaType, "application/yaml", "text/yaml"}
}

// Encode serializes v in the core wire shape as YAML.
func (c *Codec) Encode(v document.Value) ([]byte, error) {
	data, err := yaml.Marshal(codecs.EncodeUntyped(v))
	if err != nil {
		return nil, fmt.Errorf("encoding core YAML: %w", err)
	}
	return data, nil
}

// Decode parses core YAML into a document value.
func (c *Codec) Decode(data []byte, opts ...codecs.DecodeOption) (document.Value, error) {
	var untyped any
	if err := yaml.Unmarshal(data, &untyped); err != nil {
		return nil, fmt.Errorf("parsing core YAML: %w", err)
	}
	v, err := codecs.DecodeUntyped(normalizeYAML(untyped), codecs.NewDecodeOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("decoding core YAML: %w", err)
	}
	return v, nil
}

// normalizeYAML rewrites yaml.v3's map[string]interface{} trees in place of
// occasional map[interface{}]interface{} nodes so the shared decoder only
// sees string-keyed maps.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeYAML(item)
		}
		return out
	}
	return v
}
