package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
)

type OrdersHandler struct {
	client  *backend.Client
	timeout time.Duration
}

func NewOrdersHandler(client *backend.Client, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		client:  client,
		timeout: timeout,
	}
}

// GetOrder looks an order up by its order number so a customer can check
// the status of a placed order.
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	number := chi.URLParam(r, "number")
	if number == "" {
		respondError(w, http.StatusBadRequest, "invalid_order_number", "order number is required")
		return
	}

	order, err := h.client.GetOrder(ctx, number)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
