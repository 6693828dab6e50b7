package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository"
)

type productRepository struct {
	mu       sync.RWMutex
	products map[string]entity.Product
}

// NewProductRepository creates an in-memory ProductRepository.
func NewProductRepository() repository.ProductRepository {
	return &productRepository{products: make(map[string]entity.Product)}
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *productRepository) FetchByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *productRepository) Seed(ctx context.Context, products []entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.products) > 0 {
		return nil // already seeded
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return nil
}
