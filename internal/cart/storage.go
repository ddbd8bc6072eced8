package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName matches the storage key the web storefront used for its
// localStorage cart.
const DefaultFileName = "ps-store-cart.json"

// FileStorage persists the cart as a JSON file, the CLI analog of browser
// local storage. An unreadable or corrupt file loads as an empty cart.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultFileStorage places the cart file under the user's config dir.
func DefaultFileStorage() (*FileStorage, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve user config dir: %w", err)
	}
	dir := filepath.Join(configDir, "storefront")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create cart directory: %w", err)
	}
	return NewFileStorage(filepath.Join(dir, DefaultFileName)), nil
}

func (f *FileStorage) Load() ([]Item, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("could not read cart file: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		// Fail-soft: a corrupt snapshot becomes an empty cart.
		return []Item{}, nil
	}
	return items, nil
}

func (f *FileStorage) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("could not serialize cart: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("could not write cart file: %w", err)
	}
	return nil
}

// MemoryStorage keeps the cart in memory. Used in tests and as a stub when
// no durable backend is wanted.
type MemoryStorage struct {
	items []Item
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() ([]Item, error) {
	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items, nil
}

func (m *MemoryStorage) Save(items []Item) error {
	m.items = make([]Item, len(items))
	copy(m.items, items)
	return nil
}
