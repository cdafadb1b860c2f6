// Package corejson implements the core wire format over JSON.
package corejson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/vine/pkg/codecs"
	"github.com/aretw0/vine/pkg/document"
)

// MediaType is the canonical media type for core JSON payloads.
const MediaType = "application/coreapi+json"

// Codec encodes and decodes core JSON. It also accepts plain
// application/json payloads, which decode to untagged objects and arrays.
type Codec struct {
	// Indent enables two-space indented output from Encode.
	Indent bool
}

// New returns a compact core JSON codec.
func New() *Codec { return &Codec{} }

func (c *Codec) MediaTypes() []string {
	return []string{MediaType, "application/json"}
}

// Encode serializes v in the core JSON wire shape.
func (c *Codec) Encode(v document.Value) ([]byte, error) {
	untyped := codecs.EncodeUntyped(v)
	var (
		data []byte
		err  error
	)
	if c.Indent {
		data, err = json.MarshalIndent(untyped, "", "  ")
	} else {
		data, err = json.Marshal(untyped)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding core JSON: %w", err)
	}
	return data, nil
}

// Decode parses core JSON into a document value. Numbers without a
// fractional part decode as integers.
func (c *Codec) Decode(data []byte, opts ...codecs.DecodeOption) (document.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var untyped any
	if err := dec.Decode(&untyped); err != nil {
		return nil, fmt.Errorf("parsing core JSON: %w", err)
	}
	v, err := codecs.DecodeUntyped(untyped, codecs.NewDecodeOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("decoding core JSON: %w", err)
	}
	return v, nil
}
