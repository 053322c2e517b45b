package ws

import (
	"context"
	"sort"
	"sync"
)

// PresenceStore tracks which identity keys currently have at least one live
// connection. The in-memory store is the default; the valkey-backed store
// shares the set between instances.
type PresenceStore interface {
	Add(ctx context.Context, key string) error
	Remove(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}

// MemoryPresence keeps the online set in process memory. Counts are
// reference counts: an identity stays online until its last connection goes.
type MemoryPresence struct {
	mu     sync.RWMutex
	online map[string]int
}

func NewMemoryPresence() *MemoryPresence {
	return &MemoryPresence{online: make(map[string]int)}
}

func (p *MemoryPresence) Add(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[key]++
	return nil
}

func (p *MemoryPresence) Remove(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.online[key] > 1 {
		p.online[key]--
	} else {
		delete(p.online, key)
	}
	return nil
}

func (p *MemoryPresence) List(_ context.Context) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.online))
	for key := range p.online {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
