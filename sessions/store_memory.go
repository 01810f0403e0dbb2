package sessions

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store
type MemoryStore struct {
	mu     sync.RWMutex
	tokens *Tokens
}

// NewMemoryStore creates a store, optionally seeded with tokens
func NewMemoryStore(seed *Tokens) *MemoryStore {
	s := &MemoryStore{}
	if seed != nil {
		t := *seed
		s.tokens = &t
	}
	return s
}

func (s *MemoryStore) Get() (*Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return nil, nil
	}
	t := *s.tokens
	return &t, nil
}

func (s *MemoryStore) Set(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = &tokens
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = nil
	return nil
}
