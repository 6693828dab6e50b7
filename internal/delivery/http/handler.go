package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/service"
)

// Handler handles HTTP requests for the storefront API.
type Handler struct {
	cartSvc  *service.CartService
	orderSvc *service.OrderService
}

func NewHandler(cartSvc *service.CartService, orderSvc *service.OrderService) *Handler {
	return &Handler{
		cartSvc:  cartSvc,
		orderSvc: orderSvc,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.handleGetProducts)
	mux.HandleFunc("GET /api/cart", h.handleGetCart)
	mux.HandleFunc("POST /api/cart/items", h.handleAddToCart)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.handleSetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.handleRemoveFromCart)
	mux.HandleFunc("DELETE /api/cart", h.handleClearCart)
	mux.HandleFunc("POST /api/cart/migrate", h.handleMigrateCart)
	mux.HandleFunc("POST /api/orders", h.handleCheckout)
	mux.HandleFunc("GET /api/orders", h.handleGetOrders)
}

// identityFrom reads the caller's identity from headers set by the fronting
// auth layer: X-User-ID for signed-in users, X-Guest-ID for anonymous
// sessions. Either may be absent; the services validate.
func identityFrom(r *http.Request) entity.Identity {
	return entity.Identity{
		GuestKey: r.Header.Get("X-Guest-ID"),
		UserID:   r.Header.Get("X-User-ID"),
	}
}

// itemIDFrom builds the structured cart item id for a path segment. For
// guests the segment is a product id, for signed-in users a row id; the kind
// comes from the auth state, never from parsing the string.
func itemIDFrom(ident entity.Identity, pathID string) entity.ItemID {
	if ident.Authenticated() {
		return entity.RemoteItemID(pathID)
	}
	return entity.GuestItemID(pathID)
}

func (h *Handler) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.orderSvc.GetProducts(r.Context())
	if err != nil {
		slog.Error("Failed to get products", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type cartResponse struct {
	Items     []entity.CartViewItem `json:"items"`
	ItemCount int                   `json:"item_count"`
	Total     float64               `json:"total"`
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartSvc.GetCart(r.Context(), identityFrom(r))
	if err != nil {
		h.writeCartError(w, "Failed to get cart", err)
		return
	}

	items := view.Items
	if items == nil {
		items = []entity.CartViewItem{}
	}
	writeJSON(w, http.StatusOK, cartResponse{
		Items:     items,
		ItemCount: view.ItemCount(),
		Total:     view.Total(),
	})
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	if err := h.cartSvc.AddToCart(r.Context(), identityFrom(r), req.ProductID, req.Quantity); err != nil {
		h.writeCartError(w, "Failed to add to cart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ident := identityFrom(r)
	item := itemIDFrom(ident, r.PathValue("id"))
	if err := h.cartSvc.SetQuantity(r.Context(), ident, item, req.Quantity); err != nil {
		h.writeCartError(w, "Failed to set cart quantity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r)
	item := itemIDFrom(ident, r.PathValue("id"))
	if err := h.cartSvc.RemoveFromCart(r.Context(), ident, item); err != nil {
		h.writeCartError(w, "Failed to remove from cart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartSvc.ClearCart(r.Context(), identityFrom(r)); err != nil {
		h.writeCartError(w, "Failed to clear cart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMigrateCart(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r)
	if !ident.Authenticated() || ident.GuestKey == "" {
		http.Error(w, "migration requires both a guest id and a user id", http.StatusBadRequest)
		return
	}

	if err := h.cartSvc.MigrateGuestCart(r.Context(), ident.GuestKey, ident.UserID); err != nil {
		slog.Error("Failed to migrate guest cart", "err", err)
		http.Error(w, "failed to migrate cart", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.Checkout(r.Context(), identityFrom(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignInRequired):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case errors.Is(err, service.ErrEmptyCart):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			slog.Error("Failed to place order", "err", err)
			http.Error(w, "failed to place order", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.GetRecentOrders(r.Context(), identityFrom(r), 50)
	if err != nil {
		if errors.Is(err, service.ErrSignInRequired) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		slog.Error("Failed to get orders", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) writeCartError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, service.ErrNoIdentity) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Error(msg, "err", err)
	http.Error(w, "cart operation failed", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// EnableCORS is a middleware to allow the storefront SPA to connect.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Guest-ID, X-User-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
