package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Aadil-Raja/ecommerce-knives/internal/cart"
	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
)

// ProductGetter resolves a product so its details can be snapshotted into
// the cart line.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type CartHandler struct {
	cart     *cart.Store
	products ProductGetter
	timeout  time.Duration
}

func NewCartHandler(cartStore *cart.Store, products ProductGetter, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:     cartStore,
		products: products,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cart.Snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := h.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	if product.Stock <= 0 {
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	}

	updated := h.cart.AddToCart(ctx, *product, req.Quantity)
	respondJSON(w, http.StatusCreated, updated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Quantity zero or below removes the line, matching AddToCart's
	// merge semantics from the other direction.
	updated := h.cart.UpdateQuantity(ctx, productID, req.Quantity)
	respondJSON(w, http.StatusOK, updated)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	updated := h.cart.RemoveFromCart(ctx, productID)
	respondJSON(w, http.StatusOK, updated)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	updated := h.cart.ClearCart(ctx)
	respondJSON(w, http.StatusOK, updated)
}
