package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository/memory"
)

func newOrderFixture(t *testing.T) (*OrderService, *cartFixture) {
	t.Helper()
	f := newCartFixture(t)
	orders := memory.NewOrderRepository()
	return NewOrderService(orders, f.carts, f.products, f.publisher), f
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	orderSvc, f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, userIdent, "sku-1", 2)) // price 100
	require.NoError(t, f.svc.AddToCart(ctx, userIdent, "sku-2", 1)) // price 250

	order, err := orderSvc.Checkout(ctx, userIdent)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u-1", order.UserID)
	assert.Equal(t, "placed", order.Status)
	assert.Equal(t, 450.0, order.TotalPrice)
	assert.Len(t, order.Items, 2)

	rows, err := f.carts.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCheckout_GuestRejected(t *testing.T) {
	orderSvc, _ := newOrderFixture(t)

	_, err := orderSvc.Checkout(context.Background(), guestIdent)
	assert.ErrorIs(t, err, ErrSignInRequired)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	orderSvc, _ := newOrderFixture(t)

	_, err := orderSvc.Checkout(context.Background(), userIdent)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestGetRecentOrders_ReturnsPlacedOrder(t *testing.T) {
	orderSvc, f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, userIdent, "sku-1", 1))
	placed, err := orderSvc.Checkout(ctx, userIdent)
	require.NoError(t, err)

	orders, err := orderSvc.GetRecentOrders(ctx, userIdent, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
}

func TestCheckout_PublishesOrderPlaced(t *testing.T) {
	orderSvc, f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, userIdent, "sku-1", 1))
	f.publisher.events = nil

	order, err := orderSvc.Checkout(ctx, userIdent)
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	placed, ok := f.publisher.events[0].(entity.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, order.ID, placed.OrderID)
}
