package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malchin/market/cart/pkg/response"
	productResponse "github.com/malchin/market/product/pkg/response"
)

// Items is the content of one cart. Each entry keeps a snapshot of the
// product next to the quantity the shopper picked.
type Items []response.CartItem

// Add merges the given quantity into an existing entry for the same
// product, or appends a new entry.
func (items Items) Add(product productResponse.Product, quantity int32) Items {
	for i, item := range items {
		if item.Product.ID == product.ID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, response.CartItem{Product: product, Quantity: quantity})
}

// UpdateQuantity sets the quantity of the entry for productId. A quantity
// of zero or less removes the entry.
func (items Items) UpdateQuantity(productId uuid.UUID, quantity int32) Items {
	if quantity <= 0 {
		return items.Remove(productId)
	}
	for i, item := range items {
		if item.Product.ID == productId {
			items[i].Quantity = quantity
			break
		}
	}
	return items
}

// Remove drops the entry for productId. Removing a product that is not
// in the cart is a no-op.
func (items Items) Remove(productId uuid.UUID) Items {
	result := items[:0]
	for _, item := range items {
		if item.Product.ID == productId {
			continue
		}
		result = append(result, item)
	}
	return result
}

// TotalItems is the sum of all quantities.
func (items Items) TotalItems() int32 {
	var total int32
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all entries.
func (items Items) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}

// Response maps the items to the aggregated cart payload.
func (items Items) Response() response.Cart {
	cartItems := items
	if cartItems == nil {
		cartItems = Items{}
	}
	return response.Cart{
		Items:      cartItems,
		TotalItems: items.TotalItems(),
		TotalPrice: items.TotalPrice(),
	}
}
