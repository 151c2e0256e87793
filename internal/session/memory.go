package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 10*time.Minute)}
}

func (s *MemoryStore) Save(_ context.Context, d Data, ttl time.Duration) error {
	s.cache.Set(d.ID, d, ttl)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Data, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	d := v.(Data)
	return &d, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
