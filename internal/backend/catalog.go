package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
)

// CategoryPage is one page of a category listing: the category metadata, the
// products of the requested page and the pagination envelope.
type CategoryPage struct {
	Category   domain.Category   `json:"category"`
	Products   []domain.Product  `json:"products"`
	Pagination domain.Pagination `json:"pagination"`
}

// ProductPage is one page of the full catalog.
type ProductPage struct {
	Products   []domain.Product  `json:"products"`
	Pagination domain.Pagination `json:"pagination"`
}

func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryProducts fetches one page of products for the category slug.
// page starts at 1; pageSize <= 0 lets the backend pick its default.
func (c *Client) GetCategoryProducts(ctx context.Context, slug string, page, pageSize int) (*CategoryPage, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	var result CategoryPage
	if err := c.get(ctx, "/categories/"+url.PathEscape(slug)+"/products", query, &result); err != nil {
		return nil, err
	}
	result.Pagination = normalizePagination(result.Pagination, page, pageSize, len(result.Products))
	return &result, nil
}

func (c *Client) GetProducts(ctx context.Context, page, pageSize int) (*ProductPage, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	var result ProductPage
	if err := c.get(ctx, "/products", query, &result); err != nil {
		return nil, err
	}
	result.Pagination = normalizePagination(result.Pagination, page, pageSize, len(result.Products))
	return &result, nil
}

// normalizePagination fills in the pagination envelope when the backend
// sends a bare product list without one, deriving the page math locally.
func normalizePagination(p domain.Pagination, page, pageSize, got int) domain.Pagination {
	if p.Page != 0 {
		return p
	}
	total := p.Total
	if total == 0 {
		total = got
	}
	return domain.NewPagination(page, pageSize, total)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, "/products/"+strconv.FormatInt(id, 10), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/products/featured", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetBanners(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := c.get(ctx, "/banners", nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (c *Client) GetGallery(ctx context.Context) ([]domain.GalleryImage, error) {
	var images []domain.GalleryImage
	if err := c.get(ctx, "/gallery", nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}
