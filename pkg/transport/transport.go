// Package transport performs hypermedia transitions over HTTP. It supplies
// the default link handler: the link's action verb becomes the HTTP method
// and its url the target, with parameters sent as query values or a JSON
// body. Responses are decoded through a codec registry into document
// values.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/pkg/codecs"
	"github.com/aretw0/vine/pkg/codecs/corejson"
	"github.com/aretw0/vine/pkg/codecs/coreyaml"
	"github.com/aretw0/vine/pkg/document"
)

const defaultTimeout = 30 * time.Second

// HTTPTransport performs transitions against a hypermedia API. The zero
// options give a standalone client with the core JSON and YAML codecs; all
// collaborators are injected explicitly, never resolved through package
// state.
type HTTPTransport struct {
	client   *http.Client
	registry *codecs.Registry
	logger   *slog.Logger
	metrics  *Metrics
	headers  http.Header
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithHTTPClient replaces the underlying HTTP client. Timeouts and
// connection pooling are the client's concern.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) { t.client = c }
}

// WithRegistry replaces the codec registry used to decode responses.
func WithRegistry(r *codecs.Registry) Option {
	return func(t *HTTPTransport) { t.registry = r }
}

// WithLogger sets a structured logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(t *HTTPTransport) { t.logger = logger }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(t *HTTPTransport) { t.metrics = m }
}

// WithHeaders adds headers to every outgoing request.
func WithHeaders(h http.Header) Option {
	return func(t *HTTPTransport) { t.headers = h }
}

// New creates an HTTPTransport.
func New(opts ...Option) *HTTPTransport {
	t := &HTTPTransport{}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = &http.Client{Timeout: defaultTimeout}
	}
	if t.registry == nil {
		t.registry = codecs.NewRegistry(corejson.New(), coreyaml.New())
	}
	if t.logger == nil {
		t.logger = logging.NewNop()
	}
	return t
}

// Handler returns the document.HandlerFunc that routes link invocations
// through this transport.
func (t *HTTPTransport) Handler() document.HandlerFunc {
	return func(ctx context.Context, doc *document.Document, link *document.Link, params document.Params) (document.Value, error) {
		return t.Transition(ctx, link.URL(), link.Action(), params)
	}
}

// Transition performs a single request against rawURL using action as the
// HTTP method (GET when empty) and decodes the response into a document
// value. Links inside the result are bound back to this transport. A
// server-reported failure decodes to an *Error value; protocol failures
// return a Go error.
func (t *HTTPTransport) Transition(ctx context.Context, rawURL, action string, params document.Params) (document.Value, error) {
	method := strings.ToUpper(action)
	if method == "" {
		method = http.MethodGet
	}

	req, err := t.buildRequest(ctx, method, rawURL, params)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	t.metrics.observe(method, resp.StatusCode, elapsed)
	t.logger.Debug("transition",
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"duration", elapsed,
		"request_id", requestID,
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", rawURL, err)
	}

	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		if resp.StatusCode >= 400 {
			return document.NewError(resp.Status), nil
		}
		return document.Absent, nil
	}

	decoded, err := t.decodeBody(resp, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		if e, ok := decoded.(*document.Error); ok {
			return e, nil
		}
		return coerceToError(resp.Status, decoded), nil
	}
	return decoded, nil
}

func (t *HTTPTransport) buildRequest(ctx context.Context, method, rawURL string, params document.Params) (*http.Request, error) {
	var body io.Reader
	target := rawURL

	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		if len(params) > 0 {
			encoded, err := encodeQuery(rawURL, params)
			if err != nil {
				return nil, err
			}
			target = encoded
		}
	default:
		if len(params) > 0 {
			payload, err := json.Marshal(nativeParams(params))
			if err != nil {
				return nil, fmt.Errorf("encoding parameters: %w", err)
			}
			body = bytes.NewReader(payload)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", corejson.MediaType+", application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range t.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

// decodeBody picks a codec by content type and decodes, binding decoded
// links back to this transport. The final request URL (after redirects)
// is the base for relative references.
func (t *HTTPTransport) decodeBody(resp *http.Response, body []byte) (document.Value, error) {
	codec, err := t.registry.Lookup(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	base := ""
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL.String()
	}
	return codec.Decode(body,
		codecs.WithBaseURL(base),
		codecs.WithHandler(t.Handler()),
	)
}

// encodeQuery folds params into rawURL's query string. Container values
// are carried as compact JSON.
func encodeQuery(rawURL string, params document.Params) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	query := parsed.Query()
	for key, v := range params {
		switch value := v.(type) {
		case nil:
			query.Set(key, "")
		case string:
			query.Set(key, value)
		case bool:
			query.Set(key, strconv.FormatBool(value))
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			query.Set(key, fmt.Sprint(value))
		default:
			encoded, err := json.Marshal(document.ToNative(v))
			if err != nil {
				return "", fmt.Errorf("encoding parameter %q: %w", key, err)
			}
			query.Set(key, string(encoded))
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// nativeParams lowers any coerced container values back to plain data so
// they serialize cleanly.
func nativeParams(params document.Params) map[string]any {
	out := make(map[string]any, len(params))
	for key, v := range params {
		out[key] = document.ToNative(v)
	}
	return out
}

// coerceToError folds a non-Error failure payload into an Error value,
// keeping the status line as the leading message.
func coerceToError(status string, v document.Value) *document.Error {
	messages := []string{status}
	switch t := v.(type) {
	case string:
		messages = append(messages, t)
	case document.Object:
		for _, key := range t.Keys() {
			entry, _ := t.Get(key)
			if s, ok := entry.(string); ok {
				messages = append(messages, key+": "+s)
			}
		}
	case *document.Document:
		for _, key := range t.Keys() {
			entry, _ := t.Get(key)
			if s, ok := entry.(string); ok {
				messages = append(messages, key+": "+s)
			}
		}
	}
	return document.NewError(messages...)
}
