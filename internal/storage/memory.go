package storage

import (
	"sync"

	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

// MemoryStore lives only as long as the process.
type MemoryStore struct {
	mu    sync.Mutex
	creds model.Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(creds model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemoryStore) Load() (model.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loaded(s.creds.EndpointURL, s.creds.APIKey)
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = model.Credentials{}
	return nil
}
