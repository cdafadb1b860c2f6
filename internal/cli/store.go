package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrNoDocument is returned when no document has been fetched yet in this
// session.
var ErrNoDocument = errors.New("no current document, fetch one with 'get'")

const historyLimit = 50

// Store persists CLI session state (current document, history, bookmarks)
// as JSON files in a base directory.
type Store struct {
	BasePath string
}

// NewStore creates a Store rooted at basePath. If basePath is empty it
// defaults to a "vine" directory under the user config dir.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		basePath = filepath.Join(configDir, "vine")
	}
	return &Store{BasePath: basePath}, nil
}

type storedDocument struct {
	URL  string          `json:"url"`
	Data json.RawMessage `json:"data"`
}

// HistoryEntry records a fetched document.
type HistoryEntry struct {
	URL     string    `json:"url"`
	Title   string    `json:"title"`
	Fetched time.Time `json:"fetched"`
}

// SaveDocument stores the current document as its encoded wire form plus
// the URL it was fetched from.
func (s *Store) SaveDocument(data []byte, url string) error {
	return s.writeFile("document.json", storedDocument{URL: url, Data: data})
}

// LoadDocument returns the stored wire form and URL of the current
// document, or ErrNoDocument.
func (s *Store) LoadDocument() ([]byte, string, error) {
	var stored storedDocument
	if err := s.readFile("document.json", &stored); err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNoDocument
		}
		return nil, "", err
	}
	return stored.Data, stored.URL, nil
}

// AppendHistory records a fetch, newest first, keeping a bounded list.
func (s *Store) AppendHistory(url, title string) error {
	history, err := s.History()
	if err != nil {
		return err
	}
	entry := HistoryEntry{URL: url, Title: title, Fetched: time.Now().UTC()}
	history = append([]HistoryEntry{entry}, history...)
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}
	return s.writeFile("history.json", history)
}

// History returns recorded fetches, newest first.
func (s *Store) History() ([]HistoryEntry, error) {
	var history []HistoryEntry
	if err := s.readFile("history.json", &history); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return history, nil
}

// AddBookmark names a URL for later retrieval.
func (s *Store) AddBookmark(name, url string) error {
	bookmarks, err := s.Bookmarks()
	if err != nil {
		return err
	}
	if bookmarks == nil {
		bookmarks = map[string]string{}
	}
	bookmarks[name] = url
	return s.writeFile("bookmarks.json", bookmarks)
}

// Bookmarks returns the saved name to URL mapping.
func (s *Store) Bookmarks() (map[string]string, error) {
	var bookmarks map[string]string
	if err := s.readFile("bookmarks.json", &bookmarks); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return bookmarks, nil
}

// BookmarkNames returns bookmark names in sorted order.
func (s *Store) BookmarkNames() ([]string, error) {
	bookmarks, err := s.Bookmarks()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(bookmarks))
	for name := range bookmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ClearDocument removes the current document, keeping history and
// bookmarks.
func (s *Store) ClearDocument() error {
	if err := os.Remove(filepath.Join(s.BasePath, "document.json")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing document.json: %w", err)
	}
	return nil
}

// Clear removes all session state.
func (s *Store) Clear() error {
	for _, name := range []string{"document.json", "history.json", "bookmarks.json"} {
		if err := os.Remove(filepath.Join(s.BasePath, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) writeFile(name string, v any) error {
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("ensuring session directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.BasePath, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *Store) readFile(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.BasePath, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", name, err)
	}
	return nil
}
