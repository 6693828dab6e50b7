package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository"
)

// guestCartStrategy keeps the anonymous cart as a line list under one guest
// store key. Writes are whole-value: load, mutate, save.
type guestCartStrategy struct {
	store    repository.GuestCartStore
	products repository.ProductRepository
	guestKey string
}

func (g *guestCartStrategy) Add(ctx context.Context, productID string, quantity int) error {
	lines, err := g.store.Load(ctx, g.guestKey)
	if err != nil {
		return err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, entity.CartLine{ProductID: productID, Quantity: quantity})
	}
	return g.store.Save(ctx, g.guestKey, lines)
}

func (g *guestCartStrategy) Remove(ctx context.Context, item entity.ItemID) error {
	if item.Kind != entity.GuestItem {
		// A remote row id can only come from a stale authenticated view;
		// nothing to do in the guest store.
		return nil
	}

	lines, err := g.store.Load(ctx, g.guestKey)
	if err != nil {
		return err
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != item.ProductID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return nil // not in the cart, no-op
	}
	return g.store.Save(ctx, g.guestKey, kept)
}

func (g *guestCartStrategy) SetQuantity(ctx context.Context, item entity.ItemID, quantity int) error {
	if item.Kind != entity.GuestItem {
		return nil
	}

	lines, err := g.store.Load(ctx, g.guestKey)
	if err != nil {
		return err
	}

	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			lines[i].Quantity = quantity
			return g.store.Save(ctx, g.guestKey, lines)
		}
	}
	return nil // not in the cart, no-op
}

func (g *guestCartStrategy) Clear(ctx context.Context) error {
	return g.store.Clear(ctx, g.guestKey)
}

func (g *guestCartStrategy) View(ctx context.Context) (*entity.CartView, error) {
	lines, err := g.store.Load(ctx, g.guestKey)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		// An empty cart must not cost a product lookup round trip.
		return &entity.CartView{}, nil
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := g.products.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	view := &entity.CartView{}
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			continue // product gone, keep the line in the store
		}
		prod := p
		view.Items = append(view.Items, entity.CartViewItem{
			ID:        entity.GuestItemID(line.ProductID),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Product:   &prod,
		})
	}
	return view, nil
}

// userCartStrategy works directly against the remote cart rows.
type userCartStrategy struct {
	carts  repository.CartRepository
	userID string
}

func (u *userCartStrategy) Add(ctx context.Context, productID string, quantity int) error {
	// Single atomic statement: the store decides insert vs update, so two
	// concurrent adds for the same product accumulate instead of racing.
	_, err := u.carts.UpsertAdd(ctx, u.userID, productID, quantity)
	return err
}

func (u *userCartStrategy) Remove(ctx context.Context, item entity.ItemID) error {
	if item.Kind != entity.RemoteItem {
		return nil
	}
	if err := u.carts.DeleteRow(ctx, item.RowID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (u *userCartStrategy) SetQuantity(ctx context.Context, item entity.ItemID, quantity int) error {
	if item.Kind != entity.RemoteItem {
		return nil
	}
	if err := u.carts.UpdateQuantity(ctx, item.RowID, quantity); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (u *userCartStrategy) Clear(ctx context.Context) error {
	return u.carts.DeleteAllForUser(ctx, u.userID)
}

func (u *userCartStrategy) View(ctx context.Context) (*entity.CartView, error) {
	items, err := u.carts.FetchForUser(ctx, u.userID)
	if err != nil {
		return nil, err
	}

	view := &entity.CartView{}
	for _, item := range items {
		if item.Product == nil {
			continue // product gone, keep the row in the store
		}
		view.Items = append(view.Items, item)
	}
	return view, nil
}
