package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
)

// AdminHandler exposes the shop's management console. Every call is relayed
// through the authenticated admin client; the backend session cookie stays
// inside that client.
type AdminHandler struct {
	admin   *backend.AdminClient
	timeout time.Duration
}

func NewAdminHandler(admin *backend.AdminClient, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		admin:   admin,
		timeout: timeout,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/check-auth", h.CheckAuth)
	r.Get("/dashboard", h.Dashboard)

	r.Get("/products", h.ListProducts)
	r.Post("/products", h.CreateProduct)
	r.Put("/products/{id}", h.UpdateProduct)
	r.Delete("/products/{id}", h.DeleteProduct)

	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)

	r.Get("/banners", h.ListBanners)
	r.Post("/banners", h.CreateBanner)
	r.Put("/banners/{id}", h.UpdateBanner)
	r.Delete("/banners/{id}", h.DeleteBanner)

	r.Get("/gallery", h.ListGallery)
	r.Post("/gallery", h.CreateGalleryImage)
	r.Put("/gallery/{id}", h.UpdateGalleryImage)
	r.Delete("/gallery/{id}", h.DeleteGalleryImage)

	r.Get("/discounts", h.ListDiscounts)
	r.Post("/products/{id}/discount", h.ApplyDiscount)
	r.Put("/products/{id}/discount", h.ToggleDiscount)
	r.Delete("/products/{id}/discount", h.RemoveDiscount)

	r.Get("/products/{id}/images", h.ListProductImages)
	r.Post("/products/{id}/images", h.UploadProductImage)
	r.Post("/products/{id}/images/bulk", h.BulkUploadProductImages)
	r.Put("/product-images/{id}", h.UpdateProductImage)
	r.Delete("/product-images/{id}", h.DeleteProductImage)

	r.Get("/orders", h.ListOrders)
	r.Get("/orders/{id}", h.GetOrder)
	r.Put("/orders/{id}/status", h.UpdateOrderStatus)
	r.Delete("/orders/{id}", h.DeleteOrder)

	r.Get("/newsletter/subscribers", h.ListSubscribers)
	r.Delete("/newsletter/subscribers/{id}", h.DeleteSubscriber)

	return r
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return
	}

	if err := h.admin.Login(ctx, req.Email, req.Password); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.admin.Logout(ctx); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status, err := h.admin.CheckAuth(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.relayGet(w, r, func(ctx context.Context) (any, error) {
		return h.admin.GetDashboard(ctx)
	})
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.relayGet(w, r, func(ctx context.Context) (any, error) {
		return h.admin.ListProducts(ctx)
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var input backend.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	id, err := h.admin.CreateProduct(ctx, input)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input backend.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.UpdateProduct(ctx, id, input); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.DeleteProduct)
}

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.relayGet(w, r, func(ctx context.Context) (any, error) {
		return h.admin.ListCategories(ctx)
	})
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var input backend.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	id, err := h.admin.CreateCategory(ctx, input)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input backend.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.UpdateCategory(ctx, id, input); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.DeleteCategory)
}

func (h *AdminHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	h.relayGet(w, r, func(ctx context.Context) (any, error) {
		return h.admin.ListBanners(ctx)
	})
}

func (h *AdminHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var input backend.BannerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	id, err := h.admin.CreateBanner(ctx, input)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *AdminHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input backend.BannerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.UpdateBanner(ctx, id, input); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.DeleteBanner)
}

func (h *AdminHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	h.relayGet(w, r, func(ctx context.Context) (any, error) {
		return h.admin.ListGallery(ctx)
	})
}

func (h *AdminHandler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var input backend.GalleryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	id, err := h.admin.CreateGalleryImage(ctx, input)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *AdminHandler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input backend.GalleryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.UpdateGalleryImage(ctx, id, input); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.DeleteGalleryImage)
}

// DiscountViewDTO is a discount joined with its product so the console can
// show the original and reduced price side by side.
type DiscountViewDTO struct {
	domain.Discount
	ProductName     string  `json:"product_name,omitempty"`
	ProductPrice    float64 `json:"product_price,omitempty"`
	DiscountedPrice float64 `json:"discounted_price,omitempty"`
}

func (h *AdminHandler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	discounts, err := h.admin.ListDiscounts(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	products, err := h.admin.ListProducts(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	views := make([]DiscountViewDTO, 0, len(discounts))
	for _, d := range discounts {
		view := DiscountViewDTO{Discount: d}
		if p, ok := byID[d.ProductID]; ok {
			view.ProductName = p.Name
			view.ProductPrice = p.Price
			view.DiscountedPrice = d.DiscountedPrice(p.Price)
		}
		views = append(views, view)
	}
	respondJSON(w, http.StatusOK, views)
}

type DiscountRequestDTO struct {
	Percentage float64 `json:"percentage"`
	Active     bool    `json:"active"`
}

func (h *AdminHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req DiscountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.ApplyDiscount(ctx, id, req.Percentage); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ToggleDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req DiscountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.ToggleDiscount(ctx, id, req.Active); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.RemoveDiscount)
}

func (h *AdminHandler) ListProductImages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	images, err := h.admin.ListProductImages(ctx, id)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, images)
}

func (h *AdminHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "multipart field 'image' is required")
		return
	}
	defer file.Close()

	isMain := r.FormValue("is_main") == "true"
	displayOrder, _ := strconv.Atoi(r.FormValue("display_order"))
	altText := r.FormValue("alt_text")

	imageID, err := h.admin.UploadProductImage(ctx, id, header.Filename, file, isMain, displayOrder, altText)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": imageID})
}

func (h *AdminHandler) BulkUploadProductImages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "multipart form is required")
		return
	}
	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "at least one 'images' field is required")
		return
	}

	files := make([]backend.ImageFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "unreadable image in upload")
			return
		}
		defer f.Close()
		files = append(files, backend.ImageFile{Filename: header.Filename, Data: f})
	}

	isMain := r.FormValue("is_main") == "true"
	displayOrder, _ := strconv.Atoi(r.FormValue("display_order"))

	ids, err := h.admin.BulkUploadProductImages(ctx, id, files, isMain, displayOrder)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string][]int64{"ids": ids})
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.admin.GetOrder(ctx, id)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) UpdateProductImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input backend.ProductImageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.UpdateProductImage(ctx, id, input); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.DeleteProductImage)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	h.relayGet(w, r, func(ctx context.Context) (any, error) {
		return h.admin.ListOrders(ctx)
	})
}

type UpdateOrderStatusDTO struct {
	Current string `json:"current"`
	Status  string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	current := domain.OrderStatus(req.Current)
	next := domain.OrderStatus(req.Status)
	if !current.Valid() || !next.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	if err := h.admin.UpdateOrderStatus(ctx, id, current, next); err != nil {
		if errors.Is(err, backend.ErrInvalidTransition) {
			respondError(w, http.StatusConflict, "invalid_transition", err.Error())
			return
		}
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.DeleteOrder)
}

func (h *AdminHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	h.relayGet(w, r, func(ctx context.Context) (any, error) {
		return h.admin.ListSubscribers(ctx)
	})
}

func (h *AdminHandler) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	h.relayDelete(w, r, h.admin.DeleteSubscriber)
}

func (h *AdminHandler) relayGet(w http.ResponseWriter, r *http.Request, fetch func(context.Context) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := fetch(ctx)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) relayDelete(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := del(ctx, id); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
