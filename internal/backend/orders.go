package backend

import (
	"context"
	"net/url"

	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
)

type CustomerInfo struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Notes    string `json:"notes,omitempty"`
}

type OrderRequest struct {
	Customer       CustomerInfo      `json:"customer"`
	Items          []domain.LineItem `json:"items"`
	TotalAmount    float64           `json:"totalAmount"`
	PaymentMethod  string            `json:"paymentMethod"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
}

type OrderConfirmation struct {
	OrderID string `json:"orderId"`
	Success bool   `json:"success"`
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderConfirmation, error) {
	var confirmation OrderConfirmation
	if err := c.post(ctx, "/orders", req, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(orderNumber), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
