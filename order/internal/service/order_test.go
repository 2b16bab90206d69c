package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/malchin/market/internal/errors"
	"github.com/malchin/market/internal/repository"
	"github.com/malchin/market/order/pkg/request"
)

func TestCreateOrderMergesDuplicateLines(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	order, err := f.service.CreateOrder(c, customerId, request.Checkout{
		Items: []request.CheckoutItem{
			{ProductId: muttonId, Quantity: 2},
			{ProductId: muttonId, Quantity: 3},
		},
		ContactPhone:    "+97699110001",
		DeliveryAddress: "Sukhbaatar district, Ulaanbaatar",
	})
	assert.NoError(t, err)
	assert.Equal(t, customerId, order.CustomerID)
	assert.Equal(t, herderId, order.HerderID)
	assert.Equal(t, string(repository.OrderStatusPending), order.Status)
	assert.Lenf(t, order.OrderItems, 1, "duplicate lines should be merged")
	assert.Equal(t, int32(5), order.OrderItems[0].Quantity)

	expectedTotal := decimal.NewFromInt(75000)
	assert.Truef(
		t,
		expectedTotal.Equal(order.TotalAmount),
		"expected total %s got %s",
		expectedTotal,
		order.TotalAmount,
	)

	product, err := f.queries.FindProductById(c, muttonId)
	assert.NoError(t, err)
	assert.Equalf(t, int32(5), product.Quantity, "stock should be decremented")
}

func TestCreateOrderOutOfStock(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	_, err := f.service.CreateOrder(c, customerId, request.Checkout{
		Items:           []request.CheckoutItem{{ProductId: outOfStockId, Quantity: 1}},
		ContactPhone:    "+97699110001",
		DeliveryAddress: "Sukhbaatar district, Ulaanbaatar",
	})
	assert.ErrorIs(t, err, inErrors.ErrOutOfStock)

	orders, err := f.queries.FindOrdersByCustomerId(c, customerId)
	assert.NoError(t, err)
	assert.Emptyf(t, orders, "failed checkout should not persist an order")
}

func TestCreateOrderPendingProductIsNotSellable(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	_, err := f.service.CreateOrder(c, customerId, request.Checkout{
		Items:           []request.CheckoutItem{{ProductId: pendingId, Quantity: 1}},
		ContactPhone:    "+97699110001",
		DeliveryAddress: "Sukhbaatar district, Ulaanbaatar",
	})
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestOrderKeepsPriceSnapshotAfterProductUpdate(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	order, err := f.service.CreateOrder(c, customerId, request.Checkout{
		Items:           []request.CheckoutItem{{ProductId: muttonId, Quantity: 2}},
		ContactPhone:    "+97699110001",
		DeliveryAddress: "Sukhbaatar district, Ulaanbaatar",
	})
	assert.NoError(t, err)

	product, err := f.queries.FindProductById(c, muttonId)
	assert.NoError(t, err)

	newPrice := decimal.NewFromInt(99000)
	_, err = f.queries.UpdateProduct(c, repository.UpdateProductParams{
		Title:       product.Title,
		Description: product.Description,
		Price: pgtype.Numeric{
			Exp:              newPrice.Exponent(),
			InfinityModifier: pgtype.Finite,
			Int:              newPrice.Coefficient(),
			NaN:              false,
			Valid:            true,
		},
		Unit:        product.Unit,
		Category:    product.Category,
		SubCategory: product.SubCategory,
		Images:      product.Images,
		Quantity:    product.Quantity,
		ID:          product.ID,
	})
	assert.NoError(t, err)

	found, err := f.service.FindOrderById(c, customerId, order.ID)
	assert.NoError(t, err)

	expectedTotal := decimal.NewFromInt(30000)
	assert.Truef(
		t,
		expectedTotal.Equal(found.TotalAmount),
		"order total should keep the price snapshot, expected %s got %s",
		expectedTotal,
		found.TotalAmount,
	)
	assert.Len(t, found.OrderItems, 1)
	assert.Truef(
		t,
		decimal.NewFromInt(15000).Equal(found.OrderItems[0].Price),
		"order item should keep the price snapshot, got %s",
		found.OrderItems[0].Price,
	)
}

func TestOrderStatusLifecycle(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	order, err := f.service.CreateOrder(c, customerId, request.Checkout{
		Items:           []request.CheckoutItem{{ProductId: muttonId, Quantity: 1}},
		ContactPhone:    "+97699110001",
		DeliveryAddress: "Sukhbaatar district, Ulaanbaatar",
	})
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(c, customerId, order.ID, request.UpdateStatus{
		Status: "confirmed",
	})
	assert.ErrorIsf(t, err, inErrors.ErrStatusTransition, "customer cannot confirm an order")

	confirmed, err := f.service.UpdateOrderStatus(c, herderId, order.ID, request.UpdateStatus{
		Status: "confirmed",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(repository.OrderStatusConfirmed), confirmed.Status)

	_, err = f.service.UpdateOrderStatus(c, herderId, order.ID, request.UpdateStatus{
		Status: "cancelled",
	})
	assert.ErrorIsf(t, err, inErrors.ErrStatusTransition, "herder cannot cancel a confirmed order")

	cancelled, err := f.service.UpdateOrderStatus(c, adminId, order.ID, request.UpdateStatus{
		Status: "cancelled",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(repository.OrderStatusCancelled), cancelled.Status)

	_, err = f.service.UpdateOrderStatus(c, adminId, order.ID, request.UpdateStatus{
		Status: "pending",
	})
	assert.ErrorIsf(t, err, inErrors.ErrStatusTransition, "cancelled order cannot be revived")
}

func TestFindOrdersVisibility(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	order, err := f.service.CreateOrder(c, customerId, request.Checkout{
		Items:           []request.CheckoutItem{{ProductId: muttonId, Quantity: 1}},
		ContactPhone:    "+97699110001",
		DeliveryAddress: "Sukhbaatar district, Ulaanbaatar",
	})
	assert.NoError(t, err)

	customerOrders, err := f.service.FindOrders(c, customerId)
	assert.NoError(t, err)
	assert.Len(t, customerOrders, 1)
	assert.Equal(t, order.ID, customerOrders[0].ID)

	herderOrders, err := f.service.FindOrders(c, herderId)
	assert.NoError(t, err)
	assert.Len(t, herderOrders, 1)

	adminOrders, err := f.service.FindOrders(c, adminId)
	assert.NoError(t, err)
	assert.Len(t, adminOrders, 1)

	found, err := f.service.FindOrderById(c, customerId, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
}
