package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository"
)

type cartRepository struct {
	mu       sync.RWMutex
	rows     map[string]entity.CartItem // keyed by row id
	products repository.ProductRepository
}

// NewCartRepository creates an in-memory CartRepository. The product
// repository backs the view join, mirroring what the SQL implementation does
// in one query.
func NewCartRepository(products repository.ProductRepository) repository.CartRepository {
	return &cartRepository{
		rows:     make(map[string]entity.CartItem),
		products: products,
	}
}

func (r *cartRepository) FetchForUser(ctx context.Context, userID string) ([]entity.CartViewItem, error) {
	rows, err := r.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	products, err := r.products.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]entity.CartViewItem, 0, len(rows))
	for _, row := range rows {
		item := entity.CartViewItem{
			ID:        entity.RemoteItemID(row.ID),
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
		}
		if p, ok := byID[row.ProductID]; ok {
			prod := p
			item.Product = &prod
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *cartRepository) ListForUser(ctx context.Context, userID string) ([]entity.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []entity.CartItem
	for _, row := range r.rows {
		if row.UserID == userID {
			items = append(items, row)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (r *cartRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.UserID == userID && row.ProductID == productID {
			found := row
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *cartRepository) Insert(ctx context.Context, userID, productID string, quantity int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(userID, productID, quantity), nil
}

func (r *cartRepository) UpsertAdd(ctx context.Context, userID, productID string, quantity int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, row := range r.rows {
		if row.UserID == userID && row.ProductID == productID {
			row.Quantity += quantity
			r.rows[id] = row
			return id, nil
		}
	}
	return r.insertLocked(userID, productID, quantity), nil
}

func (r *cartRepository) insertLocked(userID, productID string, quantity int) string {
	id := uuid.NewString()
	r.rows[id] = entity.CartItem{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	return id
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, rowID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[rowID]
	if !ok {
		return repository.ErrNotFound
	}
	row.Quantity = quantity
	r.rows[rowID] = row
	return nil
}

func (r *cartRepository) DeleteRow(ctx context.Context, rowID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[rowID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, rowID)
	return nil
}

func (r *cartRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, row := range r.rows {
		if row.UserID == userID {
			delete(r.rows, id)
		}
	}
	return nil
}
