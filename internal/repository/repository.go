package repository

import (
	"context"
	"errors"

	"github.com/scoly/backend/internal/entity"
)

// ErrNotFound is returned by point lookups and row mutations when the target
// row does not exist. Callers that treat missing rows as a no-op (remove,
// set-quantity) check for it with errors.Is.
var ErrNotFound = errors.New("not found")

// GuestCartStore persists the anonymous cart line list under a single
// namespaced key per guest session.
type GuestCartStore interface {
	// Load returns the stored lines. An absent key or a value that fails to
	// parse reads as an empty cart, never as an error.
	Load(ctx context.Context, guestKey string) ([]entity.CartLine, error)
	// Save overwrites the stored value.
	Save(ctx context.Context, guestKey string, lines []entity.CartLine) error
	// Clear removes the key entirely.
	Clear(ctx context.Context, guestKey string) error
	// Drain atomically loads the lines and removes the key, so two racing
	// migrations of the same guest cart cannot both observe the lines.
	Drain(ctx context.Context, guestKey string) ([]entity.CartLine, error)
}

// CartRepository handles persistence for the per-user remote cart rows.
type CartRepository interface {
	// FetchForUser returns the user's cart joined with product attributes in
	// one query. Rows whose product no longer exists come back with a nil
	// Product.
	FetchForUser(ctx context.Context, userID string) ([]entity.CartViewItem, error)
	// ListForUser returns the raw rows without the product join.
	ListForUser(ctx context.Context, userID string) ([]entity.CartItem, error)
	// FindByUserAndProduct is the point lookup used to decide insert vs
	// update. Returns ErrNotFound when no row matches.
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*entity.CartItem, error)
	// Insert creates a new row and returns its id. The caller guarantees no
	// row exists for (userID, productID).
	Insert(ctx context.Context, userID, productID string, quantity int) (string, error)
	// UpsertAdd adds quantity to the row for (userID, productID), creating
	// it if absent, in a single atomic statement. Returns the row id.
	UpsertAdd(ctx context.Context, userID, productID string, quantity int) (string, error)
	// UpdateQuantity overwrites a row's quantity. Missing rows return
	// ErrNotFound.
	UpdateQuantity(ctx context.Context, rowID string, quantity int) error
	// DeleteRow removes a row. Missing rows return ErrNotFound.
	DeleteRow(ctx context.Context, rowID string) error
	// DeleteAllForUser removes every row belonging to the user.
	DeleteAllForUser(ctx context.Context, userID string) error
}

// ProductRepository handles persistence for Products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]entity.Product, error)
	// FetchByIDs resolves a set of product ids to display attributes in one
	// batched query. An empty id set returns nil without touching the
	// backend.
	FetchByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	// Seed inserts initial products if none exist.
	Seed(ctx context.Context, products []entity.Product) error
}

// OrderRepository handles persistence for Orders.
type OrderRepository interface {
	// Create persists the order with its items and decrements product stock
	// in one transaction.
	Create(ctx context.Context, order *entity.Order) error
	// FindRecentForUser returns the user's latest orders.
	FindRecentForUser(ctx context.Context, userID string, limit int) ([]entity.Order, error)
}
