package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/messaging"
	"github.com/scoly/backend/internal/repository"
)

const ordersPlacedTopic = "orders.placed"

// ErrEmptyCart is returned when a checkout finds nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// ErrSignInRequired is returned when an anonymous session hits a user-only operation.
var ErrSignInRequired = errors.New("requires a signed-in user")

// OrderService turns a signed-in user's cart into an order.
type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	products  repository.ProductRepository
	publisher messaging.Publisher
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	publisher messaging.Publisher,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		products:  products,
		publisher: publisher,
	}
}

// GetProducts returns the full catalog.
func (s *OrderService) GetProducts(ctx context.Context) ([]entity.Product, error) {
	return s.products.FindAll(ctx)
}

// GetRecentOrders returns the user's latest orders.
func (s *OrderService) GetRecentOrders(ctx context.Context, ident entity.Identity, limit int) ([]entity.Order, error) {
	if !ident.Authenticated() {
		return nil, ErrSignInRequired
	}
	if limit <= 0 {
		limit = 50
	}
	return s.orders.FindRecentForUser(ctx, ident.UserID, limit)
}

// Checkout drains the user's remote cart into a placed order. Cart lines
// whose product no longer resolves are skipped; prices are frozen onto the
// order items at this point. Payment is handled downstream.
func (s *OrderService) Checkout(ctx context.Context, ident entity.Identity) (*entity.Order, error) {
	if !ident.Authenticated() {
		return nil, ErrSignInRequired
	}

	cartItems, err := s.carts.FetchForUser(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}

	var items []entity.OrderItem
	var total float64
	for _, ci := range cartItems {
		if ci.Product == nil {
			continue
		}
		items = append(items, entity.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Product.Name,
			Price:     ci.Product.Price,
			Quantity:  ci.Quantity,
		})
		total += ci.Product.Price * float64(ci.Quantity)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &entity.Order{
		ID:         uuid.NewString(),
		UserID:     ident.UserID,
		Items:      items,
		TotalPrice: total,
		Status:     "placed",
		CreatedAt:  time.Now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := s.carts.DeleteAllForUser(ctx, ident.UserID); err != nil {
		// The order exists; a leftover cart is annoying but recoverable.
		slog.Error("Failed to clear cart after checkout", "user_id", ident.UserID, "err", err)
	}

	event := entity.OrderPlaced{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Items:      order.Items,
		TotalPrice: order.TotalPrice,
		PlacedAt:   order.CreatedAt,
	}
	if err := s.publisher.PublishEvent(ctx, ordersPlacedTopic, order.ID, event); err != nil {
		slog.Error("Failed to publish OrderPlaced event", "order_id", order.ID, "err", err)
	}

	slog.Info("Order placed", "order_id", order.ID, "user_id", order.UserID, "total", order.TotalPrice)
	return order, nil
}
