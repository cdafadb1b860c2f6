package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/vine/pkg/codecs/display"
	"github.com/aretw0/vine/pkg/document"
)

// render writes a human rendering of v to the output stream. On a
// terminal the rendering is colored, and a document's "description" entry
// (CommonMark, as produced by the OpenAPI codec) is rendered as styled
// markdown below the document.
func (a *App) render(v document.Value) error {
	interactive := a.Out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))

	opts := []display.Option{}
	if interactive {
		opts = append(opts, display.WithProfile(termenv.ColorProfile()))
	}
	renderer := display.New(opts...)

	doc, isDoc := v.(*document.Document)
	if interactive && isDoc && doc.Has("description") {
		if markdown, ok := descriptionOf(doc); ok {
			trimmed, err := document.DeleteAt(doc, document.Path{"description"})
			if err == nil {
				fmt.Fprintln(a.Out, renderer.Render(trimmed))
				return a.renderMarkdown(markdown)
			}
		}
	}

	fmt.Fprintln(a.Out, renderer.Render(v))
	return nil
}

func (a *App) renderMarkdown(markdown string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return fmt.Errorf("initializing markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	fmt.Fprint(a.Out, out)
	return nil
}

func descriptionOf(doc *document.Document) (string, bool) {
	v, err := doc.Get("description")
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
