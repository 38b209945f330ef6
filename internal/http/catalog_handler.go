package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/listing"
)

type CatalogHandler struct {
	client  *backend.Client
	flow    *listing.Flow
	timeout time.Duration
}

func NewCatalogHandler(client *backend.Client, flow *listing.Flow, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		client:  client,
		flow:    flow,
		timeout: timeout,
	}
}

// ListingResponseDTO is a listing page plus the pagination strip the view
// renders underneath it. A -1 in Pages marks an ellipsis gap.
type ListingResponseDTO struct {
	listing.State
	Pages []int `json:"pages"`
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.client.GetCategories(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	page := listing.PageFromQuery(r.URL.Query())

	state := h.flow.LoadPage(ctx, slug, page)
	respondJSON(w, http.StatusOK, ListingResponseDTO{
		State: state,
		Pages: listing.PageStrip(state.Pagination.Page, state.Pagination.TotalPages),
	})
}

func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page := listing.PageFromQuery(r.URL.Query())

	state := h.flow.LoadPage(ctx, "", page)
	respondJSON(w, http.StatusOK, ListingResponseDTO{
		State: state,
		Pages: listing.PageStrip(state.Pagination.Page, state.Pagination.TotalPages),
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.client.GetProduct(ctx, id)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.client.GetFeaturedProducts(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetBanners(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	banners, err := h.client.GetBanners(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banners)
}

func (h *CatalogHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	images, err := h.client.GetGallery(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, images)
}
