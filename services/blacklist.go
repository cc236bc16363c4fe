package services

import "sync"

// Blacklist is the process-local set of access tokens that must be rejected
// before their natural expiry, e.g. right after logout. Entries live for the
// lifetime of the process; there is no pruning, so the set only grows.
type Blacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewBlacklist() *Blacklist {
	return &Blacklist{tokens: make(map[string]struct{})}
}

func (b *Blacklist) Add(token string) {
	b.mu.Lock()
	b.tokens[token] = struct{}{}
	b.mu.Unlock()
}

func (b *Blacklist) Contains(token string) bool {
	b.mu.RLock()
	_, ok := b.tokens[token]
	b.mu.RUnlock()
	return ok
}
