/*
Package vine is a client library for server-driven hypermedia APIs.

A vine server response is a Document: a tree of data and embedded Links
describing the actions available on that data. The client navigates the
API by following and invoking links instead of hardcoding endpoint shapes;
when the server changes its schema, the document changes with it.

# Usage

	client := vine.New()

	doc, err := client.Get(ctx, "https://notes.example.com/")
	if err != nil {
		log.Fatal(err)
	}

	// Invoke the "add" link; the server's declared transition decides
	// whether the result replaces part of the tree or stands alone.
	result, err := client.Action(ctx, doc, "add", document.Params{
		"text": "buy more tea",
	})

Documents are immutable: every action yields a new value and the original
tree stays valid, so holding onto old documents is always safe.

The building blocks live in subpackages: pkg/document (the value model and
action engine), pkg/codecs (wire formats, including OpenAPI ingestion) and
pkg/transport (the HTTP handler behind every link).
*/
package vine
