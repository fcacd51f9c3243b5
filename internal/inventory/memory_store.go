package inventory

import (
	"sync"

	"github.com/nasif952/La-valecia/internal/domain"
)

// MemoryStore implements Store with in-memory storage
type MemoryStore struct {
	mu     sync.RWMutex
	stocks map[string]int // variantID -> available units
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stocks: make(map[string]int),
	}
}

func (s *MemoryStore) Ceiling(variantID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stock, exists := s.stocks[variantID]
	if !exists {
		return 0, ErrVariantNotFound
	}
	return stock, nil
}

func (s *MemoryStore) DecrementAll(items []domain.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: validate all items have sufficient stock
	for _, item := range items {
		stock, exists := s.stocks[item.VariantID]
		if !exists {
			return ErrVariantNotFound
		}
		if stock < item.Quantity {
			return ErrInsufficientStock
		}
	}

	// Second pass: deduct stock for all items
	for _, item := range items {
		s.stocks[item.VariantID] -= item.Quantity
	}
	return nil
}

func (s *MemoryStore) Restore(variantID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stocks[variantID]; !exists {
		return ErrVariantNotFound
	}
	s.stocks[variantID] += qty
	return nil
}

func (s *MemoryStore) SetStock(variantID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stocks[variantID] = qty
	return nil
}
