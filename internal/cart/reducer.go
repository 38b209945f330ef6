package cart

import "github.com/Aadil-Raja/ecommerce-knives/internal/domain"

// Pure state transitions. Each takes the previous cart value and returns a
// fresh one with the aggregates recomputed; nothing here touches storage.

func add(prev domain.Cart, product domain.Product, quantity int) domain.Cart {
	items := make([]domain.LineItem, len(prev.Items))
	copy(items, prev.Items)

	merged := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Image:     product.ImageName,
			Stock:     product.Stock,
		})
	}
	return recompute(items)
}

func remove(prev domain.Cart, productID int64) domain.Cart {
	items := make([]domain.LineItem, 0, len(prev.Items))
	for _, item := range prev.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return recompute(items)
}

func setQuantity(prev domain.Cart, productID int64, quantity int) domain.Cart {
	if quantity <= 0 {
		return remove(prev, productID)
	}
	items := make([]domain.LineItem, len(prev.Items))
	copy(items, prev.Items)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	return recompute(items)
}

func clear(domain.Cart) domain.Cart {
	return domain.EmptyCart()
}

// deduct subtracts the given quantities per product and drops lines that
// reach zero. Quantity added to a line after the deducted snapshot was taken
// stays in the cart.
func deduct(prev domain.Cart, ordered []domain.LineItem) domain.Cart {
	quantities := make(map[int64]int, len(ordered))
	for _, item := range ordered {
		quantities[item.ProductID] += item.Quantity
	}

	items := make([]domain.LineItem, 0, len(prev.Items))
	for _, item := range prev.Items {
		item.Quantity -= quantities[item.ProductID]
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	return recompute(items)
}

func recompute(items []domain.LineItem) domain.Cart {
	cart := domain.Cart{Items: items}
	for _, item := range items {
		cart.TotalItems += item.Quantity
		cart.TotalPrice += item.Price * float64(item.Quantity)
	}
	return cart
}
