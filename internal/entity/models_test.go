package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartView_DerivedTotals(t *testing.T) {
	view := CartView{Items: []CartViewItem{
		{
			ID:        RemoteItemID("row-1"),
			ProductID: "p1",
			Quantity:  2,
			Product:   &Product{ID: "p1", Price: 100},
		},
		{
			ID:        RemoteItemID("row-2"),
			ProductID: "p2",
			Quantity:  1,
			Product:   &Product{ID: "p2", Price: 250},
		},
	}}

	assert.Equal(t, 3, view.ItemCount())
	assert.Equal(t, 450.0, view.Total())
}

func TestCartView_EmptyView(t *testing.T) {
	var view CartView

	assert.Equal(t, 0, view.ItemCount())
	assert.Equal(t, 0.0, view.Total())
}

func TestCartView_UnresolvedProductCountsItemsNotTotal(t *testing.T) {
	// A line without product data still counts toward the item count; only
	// the price sum skips it.
	view := CartView{Items: []CartViewItem{
		{ID: GuestItemID("p1"), ProductID: "p1", Quantity: 2},
		{ID: GuestItemID("p2"), ProductID: "p2", Quantity: 1, Product: &Product{ID: "p2", Price: 50}},
	}}

	assert.Equal(t, 3, view.ItemCount())
	assert.Equal(t, 50.0, view.Total())
}

func TestIdentity_Authenticated(t *testing.T) {
	assert.False(t, Identity{GuestKey: "g-1"}.Authenticated())
	assert.True(t, Identity{UserID: "u-1"}.Authenticated())
}
