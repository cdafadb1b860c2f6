package codecs

import (
	"fmt"
	"mime"
	"strings"

	"github.com/containerd/errdefs"

	"github.com/aretw0/vine/pkg/document"
)

// Codec encodes and decodes document values for a set of media types.
// Decode-only codecs return a not-implemented error from Encode.
type Codec interface {
	// MediaTypes lists the media types this codec handles, most specific
	// first.
	MediaTypes() []string
	Encode(v document.Value) ([]byte, error)
	Decode(data []byte, opts ...DecodeOption) (document.Value, error)
}

// DecodeOptions carry cross-codec decode context.
type DecodeOptions struct {
	// BaseURL resolves relative document and link URLs.
	BaseURL string
	// Handler is injected into every decoded link. Links decoded without
	// a handler cannot be invoked.
	Handler document.HandlerFunc
}

// DecodeOption configures a single Decode call.
type DecodeOption func(*DecodeOptions)

// WithBaseURL sets the URL relative references resolve against, normally
// the URL the payload was fetched from.
func WithBaseURL(url string) DecodeOption {
	return func(o *DecodeOptions) { o.BaseURL = url }
}

// WithHandler injects the invocation handler into decoded links.
func WithHandler(h document.HandlerFunc) DecodeOption {
	return func(o *DecodeOptions) { o.Handler = h }
}

// NewDecodeOptions folds opts into a DecodeOptions for codec
// implementations.
func NewDecodeOptions(opts ...DecodeOption) *DecodeOptions {
	o := &DecodeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Registry selects codecs by media type.
type Registry struct {
	ordered []Codec
	byType  map[string]Codec
}

// NewRegistry builds a registry. Earlier codecs win on media type
// conflicts, and the first codec is the default for encoding and for
// responses without a usable content type.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{byType: make(map[string]Codec)}
	for _, c := range codecs {
		r.ordered = append(r.ordered, c)
		for _, mt := range c.MediaTypes() {
			if _, taken := r.byType[mt]; !taken {
				r.byType[mt] = c
			}
		}
	}
	return r
}

// Default returns the registry's first codec, or nil for an empty
// registry.
func (r *Registry) Default() Codec {
	if len(r.ordered) == 0 {
		return nil
	}
	return r.ordered[0]
}

// Lookup returns the codec registered for contentType. A structured-syntax
// suffix like "+json" falls back to the codec registered for
// "application/json"; an empty content type falls back to the default
// codec.
func (r *Registry) Lookup(contentType string) (Codec, error) {
	if contentType == "" {
		if c := r.Default(); c != nil {
			return c, nil
		}
		return nil, fmt.Errorf("empty registry: %w", errdefs.ErrNotFound)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("content type %q: %w", contentType, errdefs.ErrInvalidArgument)
	}
	if c, ok := r.byType[mediaType]; ok {
		return c, nil
	}
	if idx := strings.LastIndex(mediaType, "+"); idx >= 0 {
		suffix := "application/" + mediaType[idx+1:]
		if c, ok := r.byType[suffix]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no codec for media type %q: %w", mediaType, errdefs.ErrNotFound)
}
