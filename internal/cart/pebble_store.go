package cart

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"
)

const keyPrefix = "cart/"

// PebbleStore keeps one JSON-encoded line list per session key
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func (p *PebbleStore) Load(key string) ([]LineItem, error) {
	v, closer, err := p.db.Get([]byte(keyPrefix + key))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	var items []LineItem
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (p *PebbleStore) Save(key string, items []LineItem) error {
	k := []byte(keyPrefix + key)
	if len(items) == 0 {
		return p.db.Delete(k, pebble.Sync)
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return p.db.Set(k, b, pebble.Sync)
}

// MemoryStore is a map-backed Store used when no cart directory is configured
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]LineItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]LineItem)}
}

func (m *MemoryStore) Load(key string) ([]LineItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.data[key]
	out := make([]LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryStore) Save(key string, items []LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(items) == 0 {
		delete(m.data, key)
		return nil
	}
	cp := make([]LineItem, len(items))
	copy(cp, items)
	m.data[key] = cp
	return nil
}
