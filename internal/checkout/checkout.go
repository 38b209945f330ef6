package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/cart"
)

// ErrEmptyCart is returned when an order is submitted with nothing in the
// cart.
var ErrEmptyCart = errors.New("cart is empty")

// PaymentMethodCOD is the only payment method the shop takes.
const PaymentMethodCOD = "COD"

var (
	phoneSeparators = regexp.MustCompile(`[-\s]`)
	phoneDigits     = regexp.MustCompile(`^\d{11}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FormData is the customer-facing checkout form.
type FormData struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Notes    string `json:"notes,omitempty"`
}

// ValidationError carries per-field messages so the form can highlight each
// offending input.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form has %d invalid field(s)", len(e.Fields))
}

// Validate checks the form and returns nil when it is acceptable.
func (f FormData) Validate() *ValidationError {
	fields := map[string]string{}

	if strings.TrimSpace(f.FullName) == "" {
		fields["fullName"] = "full name is required"
	}

	phone := phoneSeparators.ReplaceAllString(f.Phone, "")
	if phone == "" {
		fields["phone"] = "phone number is required"
	} else if !phoneDigits.MatchString(phone) {
		fields["phone"] = "phone number must be 11 digits"
	}

	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		fields["email"] = "email address is not valid"
	}

	if strings.TrimSpace(f.Address) == "" {
		fields["address"] = "address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		fields["city"] = "city is required"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// OrderCreator is the slice of the backend client checkout needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req backend.OrderRequest) (*backend.OrderConfirmation, error)
}

// Service turns a filled form plus the current cart into a placed order.
type Service struct {
	cart   *cart.Store
	orders OrderCreator
	log    logrus.FieldLogger
}

func NewService(cartStore *cart.Store, orders OrderCreator, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{cart: cartStore, orders: orders, log: log}
}

// Submit validates the form and places the order. The ordered items are
// removed from the cart only after the backend confirms, so a failed
// submission keeps them for a retry and anything added concurrently while
// the order was in flight stays in the cart.
func (s *Service) Submit(ctx context.Context, form FormData) (*backend.OrderConfirmation, error) {
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	snapshot := s.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	req := backend.OrderRequest{
		Customer: backend.CustomerInfo{
			FullName: strings.TrimSpace(form.FullName),
			Phone:    phoneSeparators.ReplaceAllString(form.Phone, ""),
			Email:    strings.TrimSpace(form.Email),
			Address:  strings.TrimSpace(form.Address),
			City:     strings.TrimSpace(form.City),
			Notes:    strings.TrimSpace(form.Notes),
		},
		Items:          snapshot.Items,
		TotalAmount:    snapshot.TotalPrice,
		PaymentMethod:  PaymentMethodCOD,
		IdempotencyKey: uuid.NewString(),
	}

	confirmation, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("placing order: %w", err)
	}

	s.cart.RemoveOrderedItems(ctx, snapshot.Items)
	s.log.WithField("order_id", confirmation.OrderID).Info("order placed")
	return confirmation, nil
}
