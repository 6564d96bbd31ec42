package completion

import (
	"context"
	"sync"
)

// Store is a durable, profile-scoped completion cache.
//
// Reads never fail: storage that is empty, corrupt or unreachable reads as
// "no data". Writes report errors; callers decide whether they matter.
type Store interface {
	Get(ctx context.Context, profile, key string) (Record, bool)
	Put(ctx context.Context, profile, key string, rec Record) error
	All(ctx context.Context, profile string) map[string]Record
	Replace(ctx context.Context, profile string, doc map[string]Record) error
}

// MemoryStore keeps documents in process memory. Used by tests and by client
// profiles that opt out of the on-disk cache.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// SetRaw overwrites a profile's document with raw bytes, bypassing validation.
func (m *MemoryStore) SetRaw(profile string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[profile] = raw
}

func (m *MemoryStore) load(profile string) map[string]Record {
	m.mu.RLock()
	raw := m.docs[profile]
	m.mu.RUnlock()
	doc, _ := DecodeDocument(raw)
	return doc
}

func (m *MemoryStore) Get(ctx context.Context, profile, key string) (Record, bool) {
	rec, ok := m.load(profile)[key]
	return rec, ok
}

func (m *MemoryStore) Put(ctx context.Context, profile, key string, rec Record) error {
	doc := m.load(profile)
	doc[key] = rec
	return m.Replace(ctx, profile, doc)
}

func (m *MemoryStore) All(ctx context.Context, profile string) map[string]Record {
	return m.load(profile)
}

func (m *MemoryStore) Replace(ctx context.Context, profile string, doc map[string]Record) error {
	raw, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[profile] = raw
	return nil
}
