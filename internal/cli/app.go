// Package cli implements the session logic behind the vine command line
// client: fetching documents, acting on links, and persisting state
// between invocations.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/vine"
	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/pkg/codecs"
	"github.com/aretw0/vine/pkg/codecs/corejson"
	"github.com/aretw0/vine/pkg/codecs/coreyaml"
	"github.com/aretw0/vine/pkg/codecs/openapi"
	"github.com/aretw0/vine/pkg/document"
)

// App binds the client, the session store and the output stream together
// for the cobra commands.
type App struct {
	Client *vine.Client
	Store  *Store
	Out    io.Writer
	Logger *slog.Logger

	codec *corejson.Codec
}

// NewApp wires an App. configDir may be empty to use the default session
// location.
func NewApp(configDir string, out io.Writer, verbose bool) (*App, error) {
	store, err := NewStore(configDir)
	if err != nil {
		return nil, err
	}

	logger := logging.NewNop()
	if verbose {
		logger = logging.New(slog.LevelDebug)
	}

	return &App{
		Client: vine.New(vine.WithLogger(logger)),
		Store:  store,
		Out:    out,
		Logger: logger,
		codec:  &corejson.Codec{Indent: true},
	}, nil
}

// Get fetches url, renders the document, and makes it the current session
// document.
func (a *App) Get(ctx context.Context, url string) error {
	doc, err := a.Client.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := a.saveCurrent(doc); err != nil {
		return err
	}
	if err := a.Store.AppendHistory(doc.URL(), doc.Title()); err != nil {
		return err
	}
	return a.render(doc)
}

// Show renders the current session document.
func (a *App) Show(ctx context.Context) error {
	doc, err := a.current()
	if err != nil {
		return err
	}
	return a.render(doc)
}

// Reload refetches the current document from its canonical URL.
func (a *App) Reload(ctx context.Context) error {
	doc, err := a.current()
	if err != nil {
		return err
	}
	fresh, err := a.Client.Reload(ctx, doc)
	if err != nil {
		return err
	}
	if err := a.saveCurrent(fresh); err != nil {
		return err
	}
	return a.render(fresh)
}

// Action invokes the link at the dotted path with key=value arguments and
// folds the result into the session per the link's transition.
func (a *App) Action(ctx context.Context, path string, args []string) error {
	doc, err := a.current()
	if err != nil {
		return err
	}
	params, err := ParseParams(args)
	if err != nil {
		return err
	}

	result, err := a.Client.Action(ctx, doc, path, params)
	if err != nil {
		return err
	}

	if document.IsAbsent(result) {
		fmt.Fprintln(a.Out, "document removed")
		return a.Store.ClearDocument()
	}
	if next, ok := result.(*document.Document); ok {
		if err := a.saveCurrent(next); err != nil {
			return err
		}
	}
	return a.render(result)
}

// History prints recorded fetches, newest first.
func (a *App) History() error {
	history, err := a.Store.History()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintln(a.Out, "history is empty")
		return nil
	}
	for _, entry := range history {
		title := entry.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(a.Out, "%s  %s  %s\n", entry.Fetched.Format("2006-01-02 15:04"), title, entry.URL)
	}
	return nil
}

// AddBookmark names the current document's URL.
func (a *App) AddBookmark(name string) error {
	doc, err := a.current()
	if err != nil {
		return err
	}
	if err := a.Store.AddBookmark(name, doc.URL()); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "bookmarked %q -> %s\n", name, doc.URL())
	return nil
}

// ListBookmarks prints saved bookmarks.
func (a *App) ListBookmarks() error {
	names, err := a.Store.BookmarkNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.Out, "no bookmarks")
		return nil
	}
	bookmarks, err := a.Store.Bookmarks()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintf(a.Out, "%s  %s\n", name, bookmarks[name])
	}
	return nil
}

// OpenBookmark fetches the URL saved under name.
func (a *App) OpenBookmark(ctx context.Context, name string) error {
	bookmarks, err := a.Store.Bookmarks()
	if err != nil {
		return err
	}
	url, ok := bookmarks[name]
	if !ok {
		return fmt.Errorf("no bookmark named %q", name)
	}
	return a.Get(ctx, url)
}

// Codecs prints the media types the client understands.
func (a *App) Codecs() error {
	for _, c := range []codecs.Codec{corejson.New(), coreyaml.New(), openapi.New()} {
		fmt.Fprintln(a.Out, strings.Join(c.MediaTypes(), ", "))
	}
	return nil
}

func (a *App) current() (*document.Document, error) {
	data, _, err := a.Store.LoadDocument()
	if err != nil {
		return nil, err
	}
	v, err := a.codec.Decode(data, codecs.WithHandler(a.Client.Transport().Handler()))
	if err != nil {
		return nil, fmt.Errorf("restoring session document: %w", err)
	}
	doc, ok := v.(*document.Document)
	if !ok {
		return nil, fmt.Errorf("session state holds %s, not a document", document.KindOf(v))
	}
	return doc, nil
}

func (a *App) saveCurrent(doc *document.Document) error {
	data, err := a.codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding session document: %w", err)
	}
	return a.Store.SaveDocument(data, doc.URL())
}

// ParseParams converts key=value arguments into action parameters. Values
// parse as JSON when possible (numbers, booleans, null, arrays, objects)
// and fall back to plain strings.
func ParseParams(args []string) (document.Params, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make(document.Params, len(args))
	for _, arg := range args {
		key, raw, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("malformed parameter %q, want key=value", arg)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		params[key] = v
	}
	return params, nil
}
