package domain

// Cart is the whole client-side cart as it is persisted: the line items plus
// the two derived aggregates. TotalItems and TotalPrice are never set
// directly, they are recomputed from Items on every mutation.
type Cart struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// LineItem is one product-and-quantity pairing inside the cart. Name, Price,
// Image and Stock are snapshots taken when the product was added, they are
// not refreshed afterwards.
type LineItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
}

func EmptyCart() Cart {
	return Cart{Items: []LineItem{}}
}
