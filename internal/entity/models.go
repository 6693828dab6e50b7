package entity

import (
	"time"
)

// Product represents a product in the store catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// Identity says who owns the cart being operated on. UserID is empty for
// anonymous sessions; GuestKey is the browser-session key backing the guest
// store. It is passed explicitly into every operation, never read from
// ambient state.
type Identity struct {
	GuestKey string
	UserID   string
}

// Authenticated reports whether a signed-in user is bound to this identity.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// CartLine is one entry of a guest cart: quantity of a product, keyed by the
// product id alone. This is what gets persisted under the guest store key.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItem is one row of an authenticated user's remote cart. At most one
// row exists per (UserID, ProductID) pair.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemKind tags which store an ItemID refers to.
type ItemKind string

const (
	// GuestItem identifies a guest cart line by its product id.
	GuestItem ItemKind = "guest"
	// RemoteItem identifies a remote cart row by its row id.
	RemoteItem ItemKind = "remote"
)

// ItemID identifies one cart entry in either store. Guest lines have no row
// id, so they are addressed by product id; remote rows by their opaque row
// id. Keeping the two fields separate avoids encoding the product id inside
// a composite string.
type ItemID struct {
	Kind      ItemKind `json:"kind"`
	ProductID string   `json:"product_id,omitempty"`
	RowID     string   `json:"row_id,omitempty"`
}

// GuestItemID addresses a guest cart line.
func GuestItemID(productID string) ItemID {
	return ItemID{Kind: GuestItem, ProductID: productID}
}

// RemoteItemID addresses a remote cart row.
func RemoteItemID(rowID string) ItemID {
	return ItemID{Kind: RemoteItem, RowID: rowID}
}

// CartViewItem is one line of the UI-facing cart projection, joined with
// live product data. Product is nil when the product could not be resolved.
type CartViewItem struct {
	ID        ItemID   `json:"id"`
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// CartView is the derived, read-only projection of the authoritative cart.
// Entries whose product cannot be resolved are filtered out of the view but
// stay in the backing store.
type CartView struct {
	Items []CartViewItem `json:"items"`
}

// ItemCount is the sum of all line quantities. Derived, never stored.
func (v CartView) ItemCount() int {
	var n int
	for _, it := range v.Items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of quantity times product price over all resolved lines.
// Derived, never stored.
func (v CartView) Total() float64 {
	var total float64
	for _, it := range v.Items {
		if it.Product != nil {
			total += float64(it.Quantity) * it.Product.Price
		}
	}
	return total
}

// OrderItem is a line item within an order, with the product attributes
// frozen at checkout time.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order represents a customer order.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"` // "placed", "confirmed", "shipped"
	CreatedAt  time.Time   `json:"created_at"`
}
