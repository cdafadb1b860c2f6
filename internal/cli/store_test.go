package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DocumentRoundtrip(t *testing.T) {
	store := &Store{BasePath: t.TempDir()}

	_, _, err := store.LoadDocument()
	require.ErrorIs(t, err, ErrNoDocument)

	wire := []byte(`{"_type":"document","_meta":{"url":"https://api.example.com/"}}`)
	require.NoError(t, store.SaveDocument(wire, "https://api.example.com/"))

	data, url, err := store.LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/", url)
	assert.JSONEq(t, string(wire), string(data))

	require.NoError(t, store.ClearDocument())
	_, _, err = store.LoadDocument()
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestStore_HistoryNewestFirstAndBounded(t *testing.T) {
	store := &Store{BasePath: t.TempDir()}

	for i := 0; i < historyLimit+5; i++ {
		require.NoError(t, store.AppendHistory(fmt.Sprintf("https://example.com/%d", i), "Page"))
	}

	history, err := store.History()
	require.NoError(t, err)
	require.Len(t, history, historyLimit)
	assert.Equal(t, fmt.Sprintf("https://example.com/%d", historyLimit+4), history[0].URL)
	assert.False(t, history[0].Fetched.IsZero())
}

func TestStore_Bookmarks(t *testing.T) {
	store := &Store{BasePath: t.TempDir()}

	names, err := store.BookmarkNames()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.AddBookmark("notes", "https://notes.example.com/"))
	require.NoError(t, store.AddBookmark("api", "https://api.example.com/"))

	names, err = store.BookmarkNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "notes"}, names)

	bookmarks, err := store.Bookmarks()
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example.com/", bookmarks["notes"])
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	store := &Store{BasePath: t.TempDir()}
	require.NoError(t, store.SaveDocument([]byte(`{}`), "https://example.com/"))
	require.NoError(t, store.AppendHistory("https://example.com/", ""))
	require.NoError(t, store.AddBookmark("home", "https://example.com/"))

	require.NoError(t, store.Clear())

	_, _, err := store.LoadDocument()
	assert.True(t, errors.Is(err, ErrNoDocument))
	history, err := store.History()
	require.NoError(t, err)
	assert.Empty(t, history)
	bookmarks, err := store.Bookmarks()
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}
