package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
)

// ErrInvalidTransition rejects an order status change the fixed progression
// does not allow, before anything is sent to the backend.
var ErrInvalidTransition = fmt.Errorf("invalid order status transition")

// AdminClient drives the back-office API. Authentication is a session
// cookie: Login establishes it in the client's jar and every later call
// carries it automatically.
type AdminClient struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

func NewAdminClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) (*AdminClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AdminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}, nil
}

type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login establishes the admin session. A rejected attempt comes back as an
// APIError with Unauthorized, not a Go-level failure mode of its own.
func (a *AdminClient) Login(ctx context.Context, email, password string) error {
	return a.request(ctx, http.MethodPost, "/admin/login", loginRequest{Email: email, Password: password}, nil)
}

func (a *AdminClient) Logout(ctx context.Context) error {
	return a.request(ctx, http.MethodPost, "/admin/logout", nil, nil)
}

func (a *AdminClient) CheckAuth(ctx context.Context) (*AuthStatus, error) {
	var status AuthStatus
	if err := a.request(ctx, http.MethodGet, "/admin/check-auth", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

type DashboardStats struct {
	TotalProducts   int     `json:"total_products"`
	TotalCategories int     `json:"total_categories"`
	TotalOrders     int     `json:"total_orders"`
	ActiveBanners   int     `json:"active_banners"`
	TotalRevenue    float64 `json:"total_revenue"`
}

type Dashboard struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []domain.Order `json:"recent_orders"`
}

func (a *AdminClient) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	if err := a.request(ctx, http.MethodGet, "/admin/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// ProductInput is the write shape for product create/update.
type ProductInput struct {
	Name           string                      `json:"name"`
	Description    string                      `json:"description,omitempty"`
	Price          float64                     `json:"price"`
	CategoryID     int64                       `json:"category_id,omitempty"`
	ImageName      string                      `json:"image_name,omitempty"`
	Stock          int                         `json:"stock"`
	IsFeatured     bool                        `json:"is_featured"`
	Specifications map[string]domain.SpecValue `json:"specifications,omitempty"`
}

type createResult struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

func (a *AdminClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := a.request(ctx, http.MethodGet, "/admin/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (a *AdminClient) CreateProduct(ctx context.Context, input ProductInput) (int64, error) {
	var result createResult
	if err := a.request(ctx, http.MethodPost, "/admin/products", input, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (a *AdminClient) UpdateProduct(ctx context.Context, id int64, input ProductInput) error {
	return a.request(ctx, http.MethodPut, "/admin/products/"+strconv.FormatInt(id, 10), input, nil)
}

func (a *AdminClient) DeleteProduct(ctx context.Context, id int64) error {
	return a.request(ctx, http.MethodDelete, "/admin/products/"+strconv.FormatInt(id, 10), nil, nil)
}

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

func (a *AdminClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := a.request(ctx, http.MethodGet, "/admin/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (a *AdminClient) CreateCategory(ctx context.Context, input CategoryInput) (int64, error) {
	var result createResult
	if err := a.request(ctx, http.MethodPost, "/admin/categories", input, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (a *AdminClient) UpdateCategory(ctx context.Context, id int64, input CategoryInput) error {
	return a.request(ctx, http.MethodPut, "/admin/categories/"+strconv.FormatInt(id, 10), input, nil)
}

func (a *AdminClient) DeleteCategory(ctx context.Context, id int64) error {
	return a.request(ctx, http.MethodDelete, "/admin/categories/"+strconv.FormatInt(id, 10), nil, nil)
}

type BannerInput struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	ImageName    string `json:"image_name"`
	LinkURL      string `json:"link_url,omitempty"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

func (a *AdminClient) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := a.request(ctx, http.MethodGet, "/admin/banners", nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (a *AdminClient) CreateBanner(ctx context.Context, input BannerInput) (int64, error) {
	var result createResult
	if err := a.request(ctx, http.MethodPost, "/admin/banners", input, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (a *AdminClient) UpdateBanner(ctx context.Context, id int64, input BannerInput) error {
	return a.request(ctx, http.MethodPut, "/admin/banners/"+strconv.FormatInt(id, 10), input, nil)
}

func (a *AdminClient) DeleteBanner(ctx context.Context, id int64) error {
	return a.request(ctx, http.MethodDelete, "/admin/banners/"+strconv.FormatInt(id, 10), nil, nil)
}

type GalleryInput struct {
	Title        string `json:"title,omitempty"`
	ImageName    string `json:"image_name"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

func (a *AdminClient) ListGallery(ctx context.Context) ([]domain.GalleryImage, error) {
	var images []domain.GalleryImage
	if err := a.request(ctx, http.MethodGet, "/gallery/admin", nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (a *AdminClient) CreateGalleryImage(ctx context.Context, input GalleryInput) (int64, error) {
	var result createResult
	if err := a.request(ctx, http.MethodPost, "/gallery/admin", input, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (a *AdminClient) UpdateGalleryImage(ctx context.Context, id int64, input GalleryInput) error {
	return a.request(ctx, http.MethodPut, "/gallery/admin/"+strconv.FormatInt(id, 10), input, nil)
}

func (a *AdminClient) DeleteGalleryImage(ctx context.Context, id int64) error {
	return a.request(ctx, http.MethodDelete, "/gallery/admin/"+strconv.FormatInt(id, 10), nil, nil)
}

type DiscountInput struct {
	DiscountPercentage float64 `json:"discount_percentage"`
}

func (a *AdminClient) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	var discounts []domain.Discount
	if err := a.request(ctx, http.MethodGet, "/admin/discounts", nil, &discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}

// ApplyDiscount creates a percentage discount for the product; the backend
// deactivates any previously active one.
func (a *AdminClient) ApplyDiscount(ctx context.Context, productID int64, percentage float64) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("discount percentage must be between 0 and 100, got %v", percentage)
	}
	path := "/admin/products/" + strconv.FormatInt(productID, 10) + "/discount"
	return a.request(ctx, http.MethodPost, path, DiscountInput{DiscountPercentage: percentage}, nil)
}

func (a *AdminClient) ToggleDiscount(ctx context.Context, productID int64, active bool) error {
	path := "/admin/products/" + strconv.FormatInt(productID, 10) + "/discount"
	body := struct {
		IsActive bool `json:"is_active"`
	}{IsActive: active}
	return a.request(ctx, http.MethodPut, path, body, nil)
}

func (a *AdminClient) RemoveDiscount(ctx context.Context, productID int64) error {
	path := "/admin/products/" + strconv.FormatInt(productID, 10) + "/discount"
	return a.request(ctx, http.MethodDelete, path, nil, nil)
}

func (a *AdminClient) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := a.request(ctx, http.MethodGet, "/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *AdminClient) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	path := "/admin/orders/" + strconv.FormatInt(orderID, 10)
	if err := a.request(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order along the fixed status progression. The
// transition is validated against the current status before the request goes
// out; the backend enforces the same rule.
func (a *AdminClient) UpdateOrderStatus(ctx context.Context, orderID int64, current, next domain.OrderStatus) error {
	if !current.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}
	path := "/admin/orders/" + strconv.FormatInt(orderID, 10) + "/status"
	body := struct {
		Status domain.OrderStatus `json:"status"`
	}{Status: next}
	return a.request(ctx, http.MethodPut, path, body, nil)
}

func (a *AdminClient) DeleteOrder(ctx context.Context, orderID int64) error {
	return a.request(ctx, http.MethodDelete, "/admin/orders/"+strconv.FormatInt(orderID, 10), nil, nil)
}

func (a *AdminClient) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	var subscribers []domain.Subscriber
	if err := a.request(ctx, http.MethodGet, "/admin/newsletter/subscribers", nil, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (a *AdminClient) DeleteSubscriber(ctx context.Context, id int64) error {
	return a.request(ctx, http.MethodDelete, "/admin/newsletter/subscribers/"+strconv.FormatInt(id, 10), nil, nil)
}

func (a *AdminClient) ListProductImages(ctx context.Context, productID int64) ([]domain.ProductImage, error) {
	var images []domain.ProductImage
	path := "/admin/products/" + strconv.FormatInt(productID, 10) + "/images"
	if err := a.request(ctx, http.MethodGet, path, nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

type ProductImageInput struct {
	ImageName    string `json:"image_name,omitempty"`
	IsMain       *bool  `json:"is_main,omitempty"`
	DisplayOrder *int   `json:"display_order,omitempty"`
	AltText      string `json:"alt_text,omitempty"`
}

func (a *AdminClient) UpdateProductImage(ctx context.Context, imageID int64, input ProductImageInput) error {
	return a.request(ctx, http.MethodPut, "/admin/product-images/"+strconv.FormatInt(imageID, 10), input, nil)
}

func (a *AdminClient) DeleteProductImage(ctx context.Context, imageID int64) error {
	return a.request(ctx, http.MethodDelete, "/admin/product-images/"+strconv.FormatInt(imageID, 10), nil, nil)
}

// UploadProductImage sends one image file as multipart form data.
func (a *AdminClient) UploadProductImage(ctx context.Context, productID int64, filename string, file io.Reader, isMain bool, displayOrder int, altText string) (int64, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return 0, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, fmt.Errorf("failed to copy image data: %w", err)
	}
	writer.WriteField("is_main", strconv.FormatBool(isMain))
	writer.WriteField("display_order", strconv.Itoa(displayOrder))
	writer.WriteField("alt_text", altText)
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := a.baseURL + "/admin/products/" + strconv.FormatInt(productID, 10) + "/upload-image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result createResult
	if err := a.doJSON(req, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// ImageFile pairs an upload's filename with its content.
type ImageFile struct {
	Filename string
	Data     io.Reader
}

type bulkUploadResult struct {
	IDs []int64 `json:"ids"`
}

// BulkUploadProductImages sends several image files in one multipart
// request, each under a repeated "images" field. is_main and display_order
// apply to the batch as a whole.
func (a *AdminClient) BulkUploadProductImages(ctx context.Context, productID int64, files []ImageFile, isMain bool, displayOrder int) ([]int64, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := writer.CreateFormFile("images", f.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Data); err != nil {
			return nil, fmt.Errorf("failed to copy image data: %w", err)
		}
	}
	writer.WriteField("is_main", strconv.FormatBool(isMain))
	writer.WriteField("display_order", strconv.Itoa(displayOrder))
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := a.baseURL + "/admin/products/" + strconv.FormatInt(productID, 10) + "/upload-images-bulk"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result bulkUploadResult
	if err := a.doJSON(req, &result); err != nil {
		return nil, err
	}
	return result.IDs, nil
}

func (a *AdminClient) request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.doJSON(req, out)
}

func (a *AdminClient) doJSON(req *http.Request, out any) error {
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
