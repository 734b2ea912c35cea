package deck

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the last analyzed decklist so it can be re-run later.
type Store struct {
	Dir string // state directory; created on first save
}

// DefaultStoreDir resolves the decklist state directory, honoring
// XDG_DATA_HOME when set.
func DefaultStoreDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "revealsim")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "revealsim-state"
	}
	return filepath.Join(home, ".local", "share", "revealsim")
}

// NewStore creates a store rooted at dir ("" → DefaultStoreDir).
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultStoreDir()
	}
	return &Store{Dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.Dir, "last-decklist.txt")
}

// SaveLast writes the decklist text, replacing any previous one.
func (s *Store) SaveLast(text string) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(text), 0644); err != nil {
		return fmt.Errorf("save decklist: %w", err)
	}
	return nil
}

// LoadLast returns the most recently saved decklist text.
func (s *Store) LoadLast() (string, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		return "", fmt.Errorf("load decklist: %w", err)
	}
	return string(b), nil
}
