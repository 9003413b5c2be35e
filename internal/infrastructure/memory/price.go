// Package memory keeps prices, alerts and holdings in process memory. It
// backs the "memory" storage driver for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
)

// PriceStore is an in-memory price.PriceRepository.
type PriceStore struct {
	mu     sync.RWMutex
	quotes map[string]price.Quote
}

var _ price.PriceRepository = (*PriceStore)(nil)

// NewPriceStore creates an empty PriceStore.
func NewPriceStore() *PriceStore {
	return &PriceStore{quotes: make(map[string]price.Quote)}
}

func (s *PriceStore) Get(ctx context.Context, symbol string) (*price.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[symbol]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (s *PriceStore) Upsert(ctx context.Context, quote *price.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes[quote.Symbol] = *quote
	return nil
}
