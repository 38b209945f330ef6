package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
	"github.com/Aadil-Raja/ecommerce-knives/internal/storage"
)

// StorageKey is the single namespaced slot the cart lives under.
const StorageKey = "sharplab:cart"

// Store is the single source of truth for the shopping cart. All mutations
// go through the pure reducers and are followed by a persistence side effect;
// a persist failure is logged but never fails the mutation, the worst case is
// a cart that does not survive a restart.
type Store struct {
	mu      sync.Mutex
	state   domain.Cart
	storage storage.Store
	log     logrus.FieldLogger
}

// New hydrates the store from durable storage. A missing key starts an empty
// cart; a malformed blob is logged and also falls back to the empty cart
// rather than failing startup.
func New(ctx context.Context, store storage.Store, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		state:   domain.EmptyCart(),
		storage: store,
		log:     log,
	}

	data, err := store.Load(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s
	}
	if err != nil {
		log.WithError(err).Warn("failed to load cart, starting empty")
		return s
	}

	var saved domain.Cart
	if err := json.Unmarshal(data, &saved); err != nil {
		log.WithError(err).Warn("malformed cart blob, starting empty")
		return s
	}
	// Re-derive aggregates instead of trusting the stored ones.
	s.state = recompute(saved.Items)
	return s
}

// AddToCart merges quantity into an existing line item for the product or
// appends a new snapshot line item. Quantity is not clamped to the stock
// snapshot; the backend revalidates stock at checkout.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int) domain.Cart {
	if quantity < 1 {
		quantity = 1
	}
	return s.apply(ctx, func(prev domain.Cart) domain.Cart {
		return add(prev, product, quantity)
	})
}

// RemoveFromCart deletes the line item; removing an absent product is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID int64) domain.Cart {
	return s.apply(ctx, func(prev domain.Cart) domain.Cart {
		return remove(prev, productID)
	})
}

// UpdateQuantity sets the line item's quantity exactly. A non-positive
// quantity removes the item.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) domain.Cart {
	return s.apply(ctx, func(prev domain.Cart) domain.Cart {
		return setQuantity(prev, productID, quantity)
	})
}

// ClearCart resets to the empty cart.
func (s *Store) ClearCart(ctx context.Context) domain.Cart {
	return s.apply(ctx, clear)
}

// RemoveOrderedItems deducts the quantities of a placed order from the cart.
// Unlike ClearCart this keeps anything added while the order was in flight.
func (s *Store) RemoveOrderedItems(ctx context.Context, items []domain.LineItem) domain.Cart {
	return s.apply(ctx, func(prev domain.Cart) domain.Cart {
		return deduct(prev, items)
	})
}

// Snapshot returns the current cart value.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) apply(ctx context.Context, reduce func(domain.Cart) domain.Cart) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = reduce(s.state)
	s.persistLocked(ctx)
	return s.state
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.log.WithError(err).Error("failed to marshal cart")
		return
	}
	if err := s.storage.Save(ctx, StorageKey, data); err != nil {
		s.log.WithError(err).Error("failed to persist cart")
	}
}
