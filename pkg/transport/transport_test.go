package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vine/pkg/codecs/corejson"
	"github.com/aretw0/vine/pkg/document"
	"github.com/aretw0/vine/pkg/transport"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", corejson.MediaType)
		_, _ = w.Write([]byte(`{
			"_type": "document",
			"_meta": {"url": "/", "title": "Notes"},
			"notes": ["first"],
			"add": {"_type": "link", "url": "/add/", "action": "post",
				"fields": [{"name": "text", "required": true}]}
		}`))
	})

	r.Post("/add/", func(w http.ResponseWriter, req *http.Request) {
		var params map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&params))
		w.Header().Set("Content-Type", corejson.MediaType)
		payload, _ := json.Marshal(map[string]any{
			"_type": "document",
			"_meta": map[string]any{"url": "/", "title": "Notes"},
			"notes": []any{"first", params["text"]},
		})
		_, _ = w.Write(payload)
	})

	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		payload, _ := json.Marshal(map[string]any{"q": req.URL.Query().Get("q")})
		_, _ = w.Write(payload)
	})

	r.Get("/fail", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", corejson.MediaType)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"_type": "error", "messages": ["quota exceeded"]}`))
	})

	r.Delete("/gone", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestTransition_DecodesDocumentWithBoundLinks(t *testing.T) {
	srv := newTestServer(t)
	tr := transport.New()

	v, err := tr.Transition(context.Background(), srv.URL+"/", "get", nil)
	require.NoError(t, err)

	doc, ok := v.(*document.Document)
	require.True(t, ok, "got %T, want *document.Document", v)
	assert.Equal(t, "Notes", doc.Title())
	assert.Equal(t, srv.URL+"/", doc.URL())

	// The decoded link carries this transport as its handler: acting on
	// it round-trips through the server.
	result, err := doc.Action(context.Background(), "add", document.Params{"text": "second"})
	require.NoError(t, err)
	notes, err := document.GetAt(result, document.Path{"notes"})
	require.NoError(t, err)
	assert.True(t, document.Equal(notes, []any{"first", "second"}))
}

func TestTransition_QueryParameters(t *testing.T) {
	srv := newTestServer(t)
	tr := transport.New()

	v, err := tr.Transition(context.Background(), srv.URL+"/search", "get", document.Params{"q": "tea"})
	require.NoError(t, err)
	assert.True(t, document.Equal(v, map[string]any{"q": "tea"}))
}

func TestTransition_ServerErrorBecomesErrorValue(t *testing.T) {
	srv := newTestServer(t)
	tr := transport.New()

	v, err := tr.Transition(context.Background(), srv.URL+"/fail", "get", nil)
	require.NoError(t, err, "server failures are values, not Go errors")

	errVal, ok := v.(*document.Error)
	require.True(t, ok, "got %T, want *document.Error", v)
	assert.True(t, errVal.Equal([]string{"quota exceeded"}))
}

func TestTransition_NoContentIsAbsent(t *testing.T) {
	srv := newTestServer(t)
	tr := transport.New()

	v, err := tr.Transition(context.Background(), srv.URL+"/gone", "delete", nil)
	require.NoError(t, err)
	assert.True(t, document.IsAbsent(v))
}

func TestTransition_RecordsMetrics(t *testing.T) {
	srv := newTestServer(t)
	reg := prometheus.NewRegistry()
	metrics := transport.NewMetrics(reg)
	tr := transport.New(transport.WithMetrics(metrics))

	_, err := tr.Transition(context.Background(), srv.URL+"/", "get", nil)
	require.NoError(t, err)

	count := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "200"))
	assert.Equal(t, 1.0, count)
}
