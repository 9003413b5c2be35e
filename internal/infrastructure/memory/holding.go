package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding"
)

type watchKey struct {
	userID int64
	symbol string
}

// HoldingStore is an in-memory holding.HoldingRepository.
type HoldingStore struct {
	mu        sync.RWMutex
	nextID    int64
	watchlist map[watchKey]holding.WatchlistItem
	positions []holding.Position
}

var _ holding.HoldingRepository = (*HoldingStore)(nil)

// NewHoldingStore creates an empty HoldingStore.
func NewHoldingStore() *HoldingStore {
	return &HoldingStore{watchlist: make(map[watchKey]holding.WatchlistItem)}
}

func (s *HoldingStore) AddWatch(ctx context.Context, item *holding.WatchlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := watchKey{userID: item.UserID, symbol: item.Symbol}
	if existing, ok := s.watchlist[k]; ok {
		*item = existing
		return nil
	}

	s.nextID++
	item.ID = s.nextID
	s.watchlist[k] = *item
	return nil
}

func (s *HoldingStore) RemoveWatch(ctx context.Context, userID int64, symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := watchKey{userID: userID, symbol: symbol}
	if _, ok := s.watchlist[k]; !ok {
		return false, nil
	}
	delete(s.watchlist, k)
	return true, nil
}

func (s *HoldingStore) ListWatchlist(ctx context.Context, userID int64) ([]*holding.WatchlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*holding.WatchlistItem, 0)
	for k, v := range s.watchlist {
		if k.userID != userID {
			continue
		}
		item := v
		items = append(items, &item)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].AddedAt.After(items[j].AddedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (s *HoldingStore) AddPosition(ctx context.Context, position *holding.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	position.ID = s.nextID
	s.positions = append(s.positions, *position)
	return nil
}

func (s *HoldingStore) ListPositions(ctx context.Context, userID int64) ([]*holding.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := make([]*holding.Position, 0)
	for _, p := range s.positions {
		if p.UserID != userID {
			continue
		}
		pos := p
		positions = append(positions, &pos)
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].Symbol != positions[j].Symbol {
			return positions[i].Symbol < positions[j].Symbol
		}
		return positions[i].PurchasedAt.Before(positions[j].PurchasedAt)
	})
	return positions, nil
}

func (s *HoldingStore) ActiveSymbols(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{})
	for k := range s.watchlist {
		set[k.symbol] = struct{}{}
	}
	for _, p := range s.positions {
		set[p.Symbol] = struct{}{}
	}

	symbols := make([]string, 0, len(set))
	for symbol := range set {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}
