package domain

import "time"

type Product struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Price          float64              `json:"price"`
	CategoryID     int64                `json:"category_id"`
	CategoryName   string               `json:"category_name,omitempty"`
	CategorySlug   string               `json:"category_slug,omitempty"`
	ImageName      string               `json:"image_name"`
	Stock          int                  `json:"stock"`
	IsFeatured     bool                 `json:"is_featured"`
	Specifications map[string]SpecValue `json:"specifications,omitempty"`
	Images         []ProductImage       `json:"images,omitempty"`
	CreatedAt      time.Time            `json:"created_at,omitempty"`
	UpdatedAt      time.Time            `json:"updated_at,omitempty"`
}

// SpecValue is one entry of a product's specification table. Order controls
// display position, it has no meaning beyond sorting.
type SpecValue struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

type ProductImage struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ImageName    string `json:"image_name"`
	IsMain       bool   `json:"is_main"`
	DisplayOrder int    `json:"display_order"`
	AltText      string `json:"alt_text,omitempty"`
}
