// Package store holds the canonical in-memory collections and keeps them
// synchronized to a persisted snapshot, one key per collection.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Snapshot keys. Each collection is serialized as one JSON document under a
// fixed key. There is no schema version field; a snapshot that fails to
// parse is treated as absent.
const (
	KeyCountries = "countries"
	KeyProducts  = "products"
	KeySanctions = "sanctions"
	KeyPosts     = "forumPosts"
	KeyLoans     = "imfLoans"
	KeyProjects  = "wbProjects"
	KeySettings  = "settings"
)

// AllKeys lists every snapshot key, in hydration order.
var AllKeys = []string{
	KeyCountries, KeyProducts, KeySanctions, KeyPosts, KeyLoans, KeyProjects, KeySettings,
}

// ErrNoSnapshot is returned by a Backend when no snapshot exists for a key.
var ErrNoSnapshot = errors.New("no snapshot for key")

// Backend persists JSON-serialized snapshots under string keys.
type Backend interface {
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// MemoryBackend keeps snapshots in process memory. Used in tests and by
// tooling that runs without Redis.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(ctx context.Context, key string, dest interface{}) error {
	b.mu.RLock()
	raw, ok := b.data[key]
	b.mu.RUnlock()
	if !ok {
		return ErrNoSnapshot
	}
	return json.Unmarshal(raw, dest)
}

func (b *MemoryBackend) Save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.data[key] = raw
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	delete(b.data, key)
	b.mu.Unlock()
	return nil
}

// Put writes a raw snapshot document, bypassing marshalling. Tests use it to
// plant malformed snapshots.
func (b *MemoryBackend) Put(key string, raw []byte) {
	b.mu.Lock()
	b.data[key] = raw
	b.mu.Unlock()
}
