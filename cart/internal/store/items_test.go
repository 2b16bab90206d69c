package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	productResponse "github.com/malchin/market/product/pkg/response"
)

func newProduct(price string) productResponse.Product {
	return productResponse.Product{
		ID:    uuid.New(),
		Title: "dried curd",
		Price: decimal.RequireFromString(price),
	}
}

func TestAddMergesQuantityForSameProduct(t *testing.T) {
	product := newProduct("12000")

	items := Items{}.Add(product, 2)
	items = items.Add(product, 3)

	assert.Len(t, items, 1)
	assert.EqualValues(t, 5, items[0].Quantity)
}

func TestAddKeepsDistinctProductsApart(t *testing.T) {
	items := Items{}.Add(newProduct("5000"), 1)
	items = items.Add(newProduct("7500"), 2)

	assert.Len(t, items, 2)
}

func TestUpdateQuantity(t *testing.T) {
	product := newProduct("5000")

	tests := []struct {
		name     string
		quantity int32
		expected int
	}{
		{name: "positive quantity replaces", quantity: 7, expected: 1},
		{name: "zero quantity removes entry", quantity: 0, expected: 0},
		{name: "negative quantity removes entry", quantity: -1, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Items{}.Add(product, 2)

			items = items.UpdateQuantity(product.ID, tt.quantity)

			assert.Len(t, items, tt.expected)
			if tt.expected > 0 {
				assert.EqualValues(t, tt.quantity, items[0].Quantity)
			}
		})
	}
}

func TestRemoveUnknownProductIsNoop(t *testing.T) {
	items := Items{}.Add(newProduct("5000"), 2)

	items = items.Remove(uuid.New())

	assert.Len(t, items, 1)
}

func TestTotals(t *testing.T) {
	items := Items{}.Add(newProduct("12000"), 2)
	items = items.Add(newProduct("3500.50"), 3)

	assert.EqualValues(t, 5, items.TotalItems())
	assert.True(
		t,
		items.TotalPrice().Equal(decimal.RequireFromString("34501.50")),
		"got %s", items.TotalPrice(),
	)
}

func TestTotalsOfEmptyCart(t *testing.T) {
	items := Items{}

	assert.EqualValues(t, 0, items.TotalItems())
	assert.True(t, items.TotalPrice().IsZero())
}

func TestResponseOfNilItems(t *testing.T) {
	var items Items

	cart := items.Response()

	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.EqualValues(t, 0, cart.TotalItems)
	assert.True(t, cart.TotalPrice.IsZero())
}

func TestKey(t *testing.T) {
	userId := uuid.New()

	assert.Equal(t, "cart", Key(uuid.Nil))
	assert.Equal(t, "cart_"+userId.String(), Key(userId))
}
