package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Aadil-Raja/ecommerce-knives/internal/checkout"
)

type CheckoutHandler struct {
	service *checkout.Service
	timeout time.Duration
}

func NewCheckoutHandler(service *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var form checkout.FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	confirmation, err := h.service.Submit(ctx, form)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:  "checkout form is invalid",
				Code:   "validation_failed",
				Fields: verr.Fields,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		default:
			handleBackendError(w, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, confirmation)
}
