package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]entity.Order
}

// NewOrderRepository creates an in-memory OrderRepository.
func NewOrderRepository() repository.OrderRepository {
	return &orderRepository{orders: make(map[string]entity.Order)}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *orderRepository) FindRecentForUser(ctx context.Context, userID string, limit int) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}
