package vine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/containerd/errdefs"

	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/pkg/codecs"
	"github.com/aretw0/vine/pkg/codecs/corejson"
	"github.com/aretw0/vine/pkg/codecs/coreyaml"
	"github.com/aretw0/vine/pkg/codecs/openapi"
	"github.com/aretw0/vine/pkg/document"
	"github.com/aretw0/vine/pkg/transport"
)

// Version is the release version, overridable at build time with
// -ldflags "-X github.com/aretw0/vine.Version=...".
var Version = "0.1.0"

// Client is the high-level entry point for the vine library. It wires a
// transport and a codec registry together and exposes the interaction
// loop: fetch a document, act on its links, receive a new document.
type Client struct {
	transport *transport.HTTPTransport
	registry  *codecs.Registry
	logger    *slog.Logger

	transportOpts []transport.Option
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithTransport injects a fully configured transport, bypassing the
// default construction.
func WithTransport(t *transport.HTTPTransport) Option {
	return func(c *Client) { c.transport = t }
}

// WithRegistry replaces the default codec registry (core JSON, core YAML,
// OpenAPI).
func WithRegistry(r *codecs.Registry) Option {
	return func(c *Client) { c.registry = r }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTransportOptions forwards options to the default transport. Ignored
// when WithTransport is used.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(c *Client) { c.transportOpts = append(c.transportOpts, opts...) }
}

// New initializes a vine Client.
func New(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.registry == nil {
		c.registry = codecs.NewRegistry(corejson.New(), coreyaml.New(), openapi.New())
	}
	if c.transport == nil {
		transportOpts := []transport.Option{
			transport.WithRegistry(c.registry),
			transport.WithLogger(c.logger),
		}
		transportOpts = append(transportOpts, c.transportOpts...)
		c.transport = transport.New(transportOpts...)
	}
	return c
}

// Transport returns the transport backing this client.
func (c *Client) Transport() *transport.HTTPTransport { return c.transport }

// Get fetches url and decodes the response into a Document whose links are
// bound to this client's transport.
func (c *Client) Get(ctx context.Context, url string) (*document.Document, error) {
	v, err := c.transport.Transition(ctx, url, "get", nil)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*document.Document)
	if !ok {
		return nil, fmt.Errorf("%s decoded to %s, want a document: %w",
			url, document.KindOf(v), errdefs.ErrFailedPrecondition)
	}
	return doc, nil
}

// Reload refetches doc from its canonical URL.
func (c *Client) Reload(ctx context.Context, doc *document.Document) (*document.Document, error) {
	if doc.URL() == "" {
		return nil, fmt.Errorf("document has no url: %w", errdefs.ErrInvalidArgument)
	}
	return c.Get(ctx, doc.URL())
}

// Action invokes the link addressed by keys (a dotted string or a slice of
// keys) in doc and applies its transition. See document.Document.Action.
func (c *Client) Action(ctx context.Context, doc *document.Document, keys any, params document.Params) (document.Value, error) {
	return doc.Action(ctx, keys, params)
}
