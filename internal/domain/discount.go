package domain

import "time"

// Discount is a percentage reduction attached to a single product. At most
// one discount per product is active at a time; the backend deactivates the
// previous one when a new one is created.
type Discount struct {
	ID                 int64     `json:"id"`
	ProductID          int64     `json:"product_id"`
	DiscountPercentage float64   `json:"discount_percentage"`
	IsActive           bool      `json:"is_active"`
	CreatedBy          string    `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

// DiscountedPrice applies the percentage to a unit price.
func (d Discount) DiscountedPrice(price float64) float64 {
	return price * (1 - d.DiscountPercentage/100)
}
