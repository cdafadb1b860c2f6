package document

import "context"

// Transition kinds a link may declare. An empty transition means the action
// navigates away and has no structural effect, unless the action verb
// implies an inline update.
const (
	// TransitionInline folds the handler result back into the tree in
	// place of the link's owning document.
	TransitionInline = "inline"
)

// Field describes a single named parameter accepted by a Link.
type Field struct {
	Name     string
	Required bool
}

// NewField returns an optional field with the given name.
func NewField(name string) Field { return Field{Name: name} }

// Required returns a required field with the given name.
func Required(name string) Field { return Field{Name: name, Required: true} }

// Params are the named arguments supplied to a link invocation. Values must
// belong to the document value union; ValidateParameters enforces this.
type Params map[string]any

// HandlerFunc performs the effect behind a link. doc is the link's owning
// parent document. The result must be a document value, an *Error reported
// by the server, or Absent. The default implementation lives in the
// transport package; the core treats the call as opaque and potentially
// blocking.
type HandlerFunc func(ctx context.Context, doc *Document, link *Link, params Params) (Value, error)

// Link represents an action the client may perform. Links are immutable
// after construction; there are no mutators.
type Link struct {
	url        string
	action     string
	transition string
	fields     []Field
	handler    HandlerFunc
}

// LinkOption configures a Link at construction time.
type LinkOption func(*Link)

// WithTransition declares the structural effect of the action.
func WithTransition(transition string) LinkOption {
	return func(l *Link) { l.transition = transition }
}

// WithFields declares the parameters the link accepts, in order.
// Deduplication is not enforced.
func WithFields(fields ...Field) LinkOption {
	return func(l *Link) { l.fields = append(l.fields, fields...) }
}

// WithFieldNames declares optional parameters by bare name.
func WithFieldNames(names ...string) LinkOption {
	return func(l *Link) {
		for _, name := range names {
			l.fields = append(l.fields, Field{Name: name})
		}
	}
}

// WithHandler injects the invocation handler. There is no hidden default:
// a link constructed without a handler cannot be invoked.
func WithHandler(h HandlerFunc) LinkOption {
	return func(l *Link) { l.handler = h }
}

// NewLink builds a Link for the given target url and action verb
// (get/post/put/patch/delete).
func NewLink(url, action string, opts ...LinkOption) *Link {
	l := &Link{url: url, action: action}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// URL returns the target URL.
func (l *Link) URL() string { return l.url }

// Action returns the action verb.
func (l *Link) Action() string { return l.action }

// Transition returns the declared transition kind, possibly empty.
func (l *Link) Transition() string { return l.transition }

// Fields returns a copy of the declared fields, in declaration order.
func (l *Link) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)
	return out
}

// Invoke validates params against the link's fields and calls the handler.
// Validation failures short-circuit before the handler runs.
func (l *Link) Invoke(ctx context.Context, doc *Document, params Params) (Value, error) {
	if err := ValidateParameters(l, params); err != nil {
		return nil, err
	}
	if l.handler == nil {
		return nil, ErrNoHandler
	}
	return l.handler(ctx, doc, l, params)
}

// Equal reports whether two links describe the same action: equal url,
// action and transition, and equal field sets regardless of declaration
// order. The bound handler is excluded.
func (l *Link) Equal(other *Link) bool {
	if other == nil {
		return false
	}
	if l.url != other.url || l.action != other.action || l.transition != other.transition {
		return false
	}
	return fieldSet(l.fields).equal(fieldSet(other.fields))
}

type fieldSet []Field

func (s fieldSet) equal(other fieldSet) bool {
	seen := make(map[Field]int, len(s))
	for _, f := range s {
		seen[f] = 1
	}
	for _, f := range other {
		if seen[f] == 0 {
			return false
		}
		seen[f] = 2
	}
	for _, marked := range seen {
		if marked != 2 {
			return false
		}
	}
	return true
}
