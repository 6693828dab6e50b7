package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/messaging"
	"github.com/scoly/backend/internal/repository"
)

// cartEventsTopic receives one event per successful cart mutation. The
// storefront subscribes to it for its confirmation toasts.
const cartEventsTopic = "cart.events"

// ErrNoIdentity is returned when a cart operation arrives with neither a
// guest key nor a user id bound.
var ErrNoIdentity = errors.New("no guest key or user id bound to request")

// cartStrategy is the uniform mutation contract shared by the guest and user
// carts. CartService selects one implementation per call from the identity,
// so no operation branches on auth state itself.
type cartStrategy interface {
	Add(ctx context.Context, productID string, quantity int) error
	Remove(ctx context.Context, item entity.ItemID) error
	SetQuantity(ctx context.Context, item entity.ItemID, quantity int) error
	Clear(ctx context.Context) error
	View(ctx context.Context) (*entity.CartView, error)
}

// CartService exposes one cart regardless of auth state: anonymous sessions
// read and write the guest store, signed-in users the remote cart rows, and
// MigrateGuestCart moves the former into the latter on sign-in.
type CartService struct {
	guestStore repository.GuestCartStore
	carts      repository.CartRepository
	products   repository.ProductRepository
	publisher  messaging.Publisher
}

func NewCartService(
	guestStore repository.GuestCartStore,
	carts repository.CartRepository,
	products repository.ProductRepository,
	publisher messaging.Publisher,
) *CartService {
	return &CartService{
		guestStore: guestStore,
		carts:      carts,
		products:   products,
		publisher:  publisher,
	}
}

func (s *CartService) strategyFor(ident entity.Identity) (cartStrategy, error) {
	if ident.Authenticated() {
		return &userCartStrategy{carts: s.carts, userID: ident.UserID}, nil
	}
	if ident.GuestKey == "" {
		return nil, ErrNoIdentity
	}
	return &guestCartStrategy{store: s.guestStore, products: s.products, guestKey: ident.GuestKey}, nil
}

// AddToCart adds quantity of a product to the identity's cart, merging with
// an existing entry for the same product. Quantity defaults to 1.
func (s *CartService) AddToCart(ctx context.Context, ident entity.Identity, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	strat, err := s.strategyFor(ident)
	if err != nil {
		return err
	}
	if err := strat.Add(ctx, productID, quantity); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	s.publish(ctx, ident, entity.CartItemAdded{
		UserID:    ident.UserID,
		GuestKey:  ident.GuestKey,
		ProductID: productID,
		Quantity:  quantity,
	})
	return nil
}

// RemoveFromCart removes one cart entry. Removing an entry that no longer
// exists is a successful no-op, so double-clicks and stale views don't error.
func (s *CartService) RemoveFromCart(ctx context.Context, ident entity.Identity, item entity.ItemID) error {
	strat, err := s.strategyFor(ident)
	if err != nil {
		return err
	}
	if err := strat.Remove(ctx, item); err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}

	s.publish(ctx, ident, entity.CartItemRemoved{
		UserID:   ident.UserID,
		GuestKey: ident.GuestKey,
		Item:     item,
	})
	return nil
}

// SetQuantity overwrites an entry's quantity in place. A quantity below 1 is
// defined as a remove.
func (s *CartService) SetQuantity(ctx context.Context, ident entity.Identity, item entity.ItemID, quantity int) error {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, ident, item)
	}

	strat, err := s.strategyFor(ident)
	if err != nil {
		return err
	}
	if err := strat.SetQuantity(ctx, item, quantity); err != nil {
		return fmt.Errorf("failed to set cart quantity: %w", err)
	}

	s.publish(ctx, ident, entity.CartQuantitySet{
		UserID:   ident.UserID,
		GuestKey: ident.GuestKey,
		Item:     item,
		Quantity: quantity,
	})
	return nil
}

// ClearCart empties the identity's cart.
func (s *CartService) ClearCart(ctx context.Context, ident entity.Identity) error {
	strat, err := s.strategyFor(ident)
	if err != nil {
		return err
	}
	if err := strat.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.publish(ctx, ident, entity.CartCleared{
		UserID:   ident.UserID,
		GuestKey: ident.GuestKey,
	})
	return nil
}

// GetCart derives the current cart view from the authoritative store, joined
// with live product data. Entries whose product no longer resolves are left
// out of the view but stay in the store.
func (s *CartService) GetCart(ctx context.Context, ident entity.Identity) (*entity.CartView, error) {
	strat, err := s.strategyFor(ident)
	if err != nil {
		return nil, err
	}
	view, err := strat.View(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return view, nil
}

func (s *CartService) publish(ctx context.Context, ident entity.Identity, event entity.Event) {
	key := ident.UserID
	if key == "" {
		key = ident.GuestKey
	}
	// The event is a notification, not the source of truth. A publish
	// failure must not fail the mutation that already committed.
	if err := s.publisher.PublishEvent(ctx, cartEventsTopic, key, event); err != nil {
		slog.Error("Failed to publish cart event", "event", event.EventType(), "err", err)
	}
}
