package entity

import "time"

// Event represents a domain event.
type Event interface {
	EventType() string
}

// CartItemAdded is emitted when a user drops an item into their cart.
type CartItemAdded struct {
	UserID    string `json:"user_id,omitempty"`
	GuestKey  string `json:"guest_key,omitempty"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (e CartItemAdded) EventType() string { return "CartItemAdded" }

// CartItemRemoved is emitted when a cart entry is removed.
type CartItemRemoved struct {
	UserID   string `json:"user_id,omitempty"`
	GuestKey string `json:"guest_key,omitempty"`
	Item     ItemID `json:"item"`
}

func (e CartItemRemoved) EventType() string { return "CartItemRemoved" }

// CartQuantitySet is emitted when a cart entry's quantity is overwritten.
type CartQuantitySet struct {
	UserID   string `json:"user_id,omitempty"`
	GuestKey string `json:"guest_key,omitempty"`
	Item     ItemID `json:"item"`
	Quantity int    `json:"quantity"`
}

func (e CartQuantitySet) EventType() string { return "CartQuantitySet" }

// CartCleared is emitted when a cart is emptied.
type CartCleared struct {
	UserID   string `json:"user_id,omitempty"`
	GuestKey string `json:"guest_key,omitempty"`
}

func (e CartCleared) EventType() string { return "CartCleared" }

// CartMigrated is emitted after guest cart lines have been merged into a
// signed-in user's remote cart.
type CartMigrated struct {
	GuestKey   string    `json:"guest_key"`
	UserID     string    `json:"user_id"`
	Lines      int       `json:"lines"`
	Failed     int       `json:"failed"`
	MigratedAt time.Time `json:"migrated_at"`
}

func (e CartMigrated) EventType() string { return "CartMigrated" }

// OrderPlaced is emitted when a checkout succeeds.
type OrderPlaced struct {
	OrderID    string      `json:"order_id"`
	UserID     string      `json:"user_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	PlacedAt   time.Time   `json:"placed_at"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }
