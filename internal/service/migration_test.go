package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoly/backend/internal/entity"
)

func TestMigrateGuestCart_AddsToExistingRemoteRow(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-1", 3))
	require.NoError(t, f.svc.AddToCart(ctx, userIdent, "sku-1", 2))

	require.NoError(t, f.svc.MigrateGuestCart(ctx, "g-1", "u-1"))

	rows, err := f.carts.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sku-1", rows[0].ProductID)
	assert.Equal(t, 5, rows[0].Quantity)

	lines, err := f.guest.Load(ctx, "g-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestMigrateGuestCart_InsertsMissingRow(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-1", 3))

	require.NoError(t, f.svc.MigrateGuestCart(ctx, "g-1", "u-1"))

	rows, err := f.carts.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sku-1", rows[0].ProductID)
	assert.Equal(t, 3, rows[0].Quantity)
}

func TestMigrateGuestCart_SignInEndToEnd(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	// Anonymous shopping session.
	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-1", 2))
	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-2", 1))

	// Sign in as u-1.
	require.NoError(t, f.svc.MigrateGuestCart(ctx, "g-1", "u-1"))

	rows, err := f.carts.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	byProduct := map[string]int{}
	for _, row := range rows {
		byProduct[row.ProductID] = row.Quantity
	}
	assert.Equal(t, map[string]int{"sku-1": 2, "sku-2": 1}, byProduct)

	lines, err := f.guest.Load(ctx, "g-1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	// The authenticated view now reflects the merged cart.
	view, err := f.svc.GetCart(ctx, userIdent)
	require.NoError(t, err)
	assert.Equal(t, 3, view.ItemCount())
}

func TestMigrateGuestCart_EmptyGuestCartIsNoop(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.MigrateGuestCart(ctx, "g-1", "u-1"))

	rows, err := f.carts.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMigrateGuestCart_RunsOnce(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-1", 3))

	require.NoError(t, f.svc.MigrateGuestCart(ctx, "g-1", "u-1"))
	// A second sign-in (another tab racing the first) finds a drained cart
	// and must not duplicate the lines.
	require.NoError(t, f.svc.MigrateGuestCart(ctx, "g-1", "u-1"))

	rows, err := f.carts.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Quantity)
}

func TestMigrateGuestCart_FailedLineDoesNotAbort(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-1", 1))
	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-2", 2))
	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-3", 3))

	failing := &failingCartRepo{
		CartRepository: f.carts,
		failInsert:     map[string]bool{"sku-2": true},
	}
	svc := NewCartService(f.guest, failing, f.products, f.publisher)

	require.NoError(t, svc.MigrateGuestCart(ctx, "g-1", "u-1"))

	rows, err := f.carts.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	byProduct := map[string]int{}
	for _, row := range rows {
		byProduct[row.ProductID] = row.Quantity
	}
	// sku-2 is lost to the failure, the surrounding lines still land.
	assert.Equal(t, map[string]int{"sku-1": 1, "sku-3": 3}, byProduct)
}

func TestMigrateGuestCart_RequiresBothIdentities(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.MigrateGuestCart(ctx, "", "u-1"), ErrNoIdentity)
	assert.ErrorIs(t, f.svc.MigrateGuestCart(ctx, "g-1", ""), ErrNoIdentity)
}

func TestMigrateGuestCart_PublishesMigratedEvent(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, guestIdent, "sku-1", 2))
	f.publisher.events = nil

	require.NoError(t, f.svc.MigrateGuestCart(ctx, "g-1", "u-1"))

	require.Len(t, f.publisher.events, 1)
	migrated, ok := f.publisher.events[0].(entity.CartMigrated)
	require.True(t, ok)
	assert.Equal(t, "g-1", migrated.GuestKey)
	assert.Equal(t, "u-1", migrated.UserID)
	assert.Equal(t, 1, migrated.Lines)
	assert.Equal(t, 0, migrated.Failed)
}
