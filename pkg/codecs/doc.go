/*
Package codecs defines the wire codec contract for hypermedia documents and
a registry for selecting a codec by media type.

Concrete codecs live in subpackages: corejson and coreyaml implement the
core wire format over JSON and YAML, openapi decodes OpenAPI 3 descriptions
into link-bearing documents, and display renders documents for humans.
*/
package codecs
