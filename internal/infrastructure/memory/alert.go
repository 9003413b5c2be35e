package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	"github.com/shopspring/decimal"
)

// AlertStore is an in-memory alert.AlertRepository. Evaluate holds the write
// lock for the whole check-and-flip, so concurrent callers never flip the
// same alert twice.
type AlertStore struct {
	mu     sync.Mutex
	nextID int64
	alerts map[int64]*alert.Alert
}

var _ alert.AlertRepository = (*AlertStore)(nil)

// NewAlertStore creates an empty AlertStore.
func NewAlertStore() *AlertStore {
	return &AlertStore{alerts: make(map[int64]*alert.Alert)}
}

func (s *AlertStore) Create(ctx context.Context, a *alert.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	a.ID = s.nextID
	a.Triggered = false
	a.TriggeredAt = nil
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	s.alerts[a.ID] = cloneAlert(a)
	return nil
}

func (s *AlertStore) ListFor(ctx context.Context, filter alert.Filter) ([]*alert.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*alert.Alert, 0)
	for _, a := range s.alerts {
		if a.UserID != filter.UserID {
			continue
		}
		if filter.Symbol != "" && a.Symbol != filter.Symbol {
			continue
		}
		result = append(result, cloneAlert(a))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *AlertStore) Evaluate(ctx context.Context, symbol string, p decimal.Decimal, now time.Time) ([]*alert.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	triggered := make([]*alert.Alert, 0)
	for _, a := range s.alerts {
		if a.Symbol != symbol || a.Triggered {
			continue
		}
		if !a.Direction.Crossed(p, a.TargetPrice) {
			continue
		}
		at := now
		a.Triggered = true
		a.TriggeredAt = &at
		triggered = append(triggered, cloneAlert(a))
	}

	sort.Slice(triggered, func(i, j int) bool { return triggered[i].ID < triggered[j].ID })
	return triggered, nil
}

func (s *AlertStore) Delete(ctx context.Context, userID, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(s.alerts, id)
	return true, nil
}

func cloneAlert(a *alert.Alert) *alert.Alert {
	cp := *a
	if a.TriggeredAt != nil {
		at := *a.TriggeredAt
		cp.TriggeredAt = &at
	}
	return &cp
}
