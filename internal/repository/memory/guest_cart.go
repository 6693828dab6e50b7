package memory

import (
	"context"
	"sync"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository"
)

type guestCartStore struct {
	mu    sync.RWMutex
	carts map[string][]entity.CartLine
}

// NewGuestCartStore creates an in-memory GuestCartStore.
func NewGuestCartStore() repository.GuestCartStore {
	return &guestCartStore{carts: make(map[string][]entity.CartLine)}
}

func (s *guestCartStore) Load(ctx context.Context, guestKey string) ([]entity.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLines(s.carts[guestKey]), nil
}

func (s *guestCartStore) Save(ctx context.Context, guestKey string, lines []entity.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(lines) == 0 {
		delete(s.carts, guestKey)
		return nil
	}
	s.carts[guestKey] = cloneLines(lines)
	return nil
}

func (s *guestCartStore) Clear(ctx context.Context, guestKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, guestKey)
	return nil
}

func (s *guestCartStore) Drain(ctx context.Context, guestKey string) ([]entity.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[guestKey]
	delete(s.carts, guestKey)
	return lines, nil
}

func cloneLines(lines []entity.CartLine) []entity.CartLine {
	if lines == nil {
		return nil
	}
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out
}
