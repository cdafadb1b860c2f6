package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/containerd/errdefs"
)

// Handlers mirroring the transition behaviors a server can declare.

func followHandler(ctx context.Context, doc *Document, link *Link, params Params) (Value, error) {
	return NewDocument("", "", map[string]any{"new": 123})
}

func updateHandler(ctx context.Context, doc *Document, link *Link, params Params) (Value, error) {
	return NewDocument("", "", map[string]any{"new": 123, "param": params["param"]})
}

func deleteHandler(ctx context.Context, doc *Document, link *Link, params Params) (Value, error) {
	return Absent, nil
}

func errorHandler(ctx context.Context, doc *Document, link *Link, params Params) (Value, error) {
	return NewError("bad"), nil
}

func transitionsDoc(t *testing.T) *Document {
	t.Helper()
	return mustDoc(t, "", "", map[string]any{
		"nested": mustDoc(t, "", "", map[string]any{
			"follow": NewLink("/follow/", "get", WithHandler(followHandler)),
			"create": NewLink("/create/", "post", WithFieldNames("param"), WithHandler(updateHandler)),
			"update": NewLink("/update/", "put", WithFieldNames("param"), WithHandler(updateHandler)),
			"inline": NewLink("/inline/", "post", WithTransition(TransitionInline), WithFieldNames("param"), WithHandler(updateHandler)),
			"delete": NewLink("/delete/", "delete", WithHandler(deleteHandler)),
			"error":  NewLink("/error/", "post", WithHandler(errorHandler)),
		}),
	})
}

func TestAction_FollowDetaches(t *testing.T) {
	doc := transitionsDoc(t)
	got, err := doc.Action(context.Background(), []string{"nested", "follow"}, nil)
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	if !Equal(got, map[string]any{"new": 123}) {
		t.Errorf("follow result = %v, want detached {new: 123}", got)
	}
	// The original root is untouched.
	if _, err := GetAt(doc, Path{"nested", "follow"}); err != nil {
		t.Errorf("original tree changed: %v", err)
	}
}

func TestAction_CreateDetaches(t *testing.T) {
	doc := transitionsDoc(t)
	got, err := doc.Action(context.Background(), []string{"nested", "create"}, Params{"param": 456})
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	if !Equal(got, map[string]any{"new": 123, "param": 456}) {
		t.Errorf("create result = %v", got)
	}
}

func TestAction_UpdateVerbImpliesInline(t *testing.T) {
	doc := transitionsDoc(t)
	got, err := doc.Action(context.Background(), []string{"nested", "update"}, Params{"param": 789})
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	if !Equal(got, map[string]any{"nested": map[string]any{"new": 123, "param": 789}}) {
		t.Errorf("update result = %v, want nested replaced in place", got)
	}
}

func TestAction_ExplicitInlineTransition(t *testing.T) {
	doc := transitionsDoc(t)
	got, err := doc.Action(context.Background(), []string{"nested", "inline"}, Params{"param": 1})
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	if !Equal(got, map[string]any{"nested": map[string]any{"new": 123, "param": 1}}) {
		t.Errorf("inline result = %v, want nested replaced in place", got)
	}
}

func TestAction_DeleteRemovesOwningDocument(t *testing.T) {
	doc := transitionsDoc(t)
	got, err := doc.Action(context.Background(), []string{"nested", "delete"}, nil)
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	if !Equal(got, map[string]any{}) {
		t.Errorf("delete result = %v, want empty document", got)
	}
}

func TestAction_DeleteAtRootReturnsAbsent(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{
		"remove": NewLink("/remove/", "delete", WithHandler(deleteHandler)),
	})
	got, err := doc.Action(context.Background(), []string{"remove"}, nil)
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	if !IsAbsent(got) {
		t.Errorf("removing the root document should yield Absent, got %v", got)
	}
}

func TestAction_ErrorResultAborts(t *testing.T) {
	doc := transitionsDoc(t)
	_, err := doc.Action(context.Background(), []string{"nested", "error"}, nil)
	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("error = %T, want *ActionError", err)
	}
	if len(actionErr.Messages) != 1 || actionErr.Messages[0] != "bad" {
		t.Errorf("messages = %v, want [bad]", actionErr.Messages)
	}
	if !errors.Is(err, errdefs.ErrFailedPrecondition) {
		t.Error("action error should classify as failed precondition")
	}
	// No structural update was attempted.
	if _, err := GetAt(doc, Path{"nested", "error"}); err != nil {
		t.Errorf("original tree changed: %v", err)
	}
}

func TestAction_TerminalMustBeLink(t *testing.T) {
	doc := transitionsDoc(t)
	_, err := doc.Action(context.Background(), []string{"nested"}, nil)
	var notLink *NotLinkError
	if !errors.As(err, &notLink) {
		t.Fatalf("error = %T, want *NotLinkError", err)
	}
	if notLink.Kind != KindDocument {
		t.Errorf("NotLinkError kind = %s, want document", notLink.Kind)
	}
}

func TestAction_MalformedKeys(t *testing.T) {
	doc := transitionsDoc(t)

	_, err := doc.Action(context.Background(), 42, nil)
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %T, want *ArgumentError", err)
	}

	_, err = doc.Action(context.Background(), []any{"nested", 1.5}, nil)
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %T, want *ArgumentError for float element", err)
	}
}

func TestAction_IntSliceKeys(t *testing.T) {
	path, err := resolveKeys(transitionsDoc(t), []int{0, 2})
	if err != nil {
		t.Fatalf("resolveKeys failed: %v", err)
	}
	if len(path) != 2 || path[0] != 0 || path[1] != 2 {
		t.Errorf("path = %v, want [0 2]", path)
	}
}

func TestAction_DottedPathThroughArray(t *testing.T) {
	handler := func(ctx context.Context, doc *Document, link *Link, params Params) (Value, error) {
		return NewDocument("", "", map[string]any{"edited": true})
	}
	doc := mustDoc(t, "", "", map[string]any{
		"rows": []any{
			mustDoc(t, "", "", map[string]any{"edit": NewLink("/0/edit", "put", WithHandler(handler))}),
			mustDoc(t, "", "", map[string]any{"edit": NewLink("/1/edit", "put", WithHandler(handler))}),
		},
	})

	got, err := doc.Action(context.Background(), "rows.1.edit", nil)
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	row, err := GetAt(got, Path{"rows", 1})
	if err != nil {
		t.Fatalf("GetAt failed: %v", err)
	}
	if !Equal(row, map[string]any{"edited": true}) {
		t.Errorf("row after action = %v, want {edited: true}", row)
	}
	// The untouched row keeps its link.
	if _, err := GetAt(got, Path{"rows", 0, "edit"}); err != nil {
		t.Errorf("untouched row lost its link: %v", err)
	}
}

func TestAction_OwnerIsNearestDocument(t *testing.T) {
	// The link hangs off an Object inside the inner document; the inner
	// document, not the object or the root, owns the update.
	handler := func(ctx context.Context, doc *Document, link *Link, params Params) (Value, error) {
		if doc.Title() != "inner" {
			t.Errorf("handler received document %q, want inner", doc.Title())
		}
		return NewDocument("", "", map[string]any{"replaced": true})
	}
	doc := mustDoc(t, "", "root", map[string]any{
		"inner": mustDoc(t, "", "inner", map[string]any{
			"section": map[string]any{
				"save": NewLink("/save/", "put", WithHandler(handler)),
			},
		}),
	})

	got, err := doc.Action(context.Background(), []string{"inner", "section", "save"}, nil)
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	if !Equal(got, map[string]any{"inner": map[string]any{"replaced": true}}) {
		t.Errorf("result = %v, want inner document replaced", got)
	}
}

func TestAction_ValidationFailures(t *testing.T) {
	doc := transitionsDoc(t)

	cases := []struct {
		name   string
		keys   any
		params Params
	}{
		{"unknown parameter", []string{"nested", "update"}, Params{"bogus": 1}},
		{"non-value parameter", []string{"nested", "update"}, Params{"param": time.Now()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := doc.Action(context.Background(), tc.keys, tc.params)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("error = %T, want *ValidationError", err)
			}
		})
	}
}

func TestAction_MissingRequiredParameter(t *testing.T) {
	doc := mustDoc(t, "", "", map[string]any{
		"create": NewLink("/create/", "post", WithFields(Required("name")), WithHandler(updateHandler)),
	})
	_, err := doc.Action(context.Background(), []string{"create"}, nil)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("error = %T, want *ValidationError", err)
	}
}
