package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/malchin/market/internal/errors"
	"github.com/malchin/market/internal/repository"
	"github.com/malchin/market/product/pkg/request"
)

func TestInsertProductStartsPending(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	product, err := f.service.InsertProduct(c, herderId, request.Product{
		Title:       "Yak butter",
		Description: "Churned from summer milk",
		Price:       decimal.NewFromInt(20000),
		Unit:        "kg",
		Category:    "dairy",
		SubCategory: "butter",
		Images:      []string{"https://images.example.com/butter.jpg"},
		Quantity:    4,
	})
	assert.NoError(t, err)
	assert.Equal(t, string(repository.ProductStatusPending), product.Status)
	assert.Equal(t, herderId, product.HerderID)
	assert.Equal(t, "Tuya", product.HerderName)

	listed, err := f.service.FindApprovedProducts(c, request.FindProducts{})
	assert.NoError(t, err)
	for _, p := range listed {
		assert.NotEqualf(t, product.ID, p.ID, "pending product should not reach the storefront")
	}
}

func TestInsertProductByCustomerForbidden(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	_, err := f.service.InsertProduct(c, customerId, request.Product{
		Title:    "Mutton",
		Price:    decimal.NewFromInt(15000),
		Unit:     "kg",
		Category: "meat",
		Images:   []string{"https://images.example.com/mutton.jpg"},
		Quantity: 1,
	})
	assert.ErrorIs(t, err, inErrors.ErrForbidden)
}

func TestStorefrontShowsOnlyApproved(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	listed, err := f.service.FindApprovedProducts(c, request.FindProducts{})
	assert.NoError(t, err)
	assert.Lenf(t, listed, 1, "an unset limit should fall back to the default page size")
	assert.Equal(t, approvedId, listed[0].ID)

	limited, err := f.service.FindApprovedProducts(c, request.FindProducts{Limit: 1})
	assert.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestModerationGate(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	_, err := f.service.UpdateProductStatus(c, herderId, pendingId, request.UpdateStatus{
		Status: "approved",
	})
	assert.ErrorIsf(t, err, inErrors.ErrForbidden, "herder cannot moderate")

	product, err := f.service.UpdateProductStatus(c, adminId, pendingId, request.UpdateStatus{
		Status: "approved",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(repository.ProductStatusApproved), product.Status)

	listed, err := f.service.FindApprovedProducts(c, request.FindProducts{})
	assert.NoError(t, err)
	assert.Lenf(t, listed, 2, "approved product should reach the storefront")

	_, err = f.service.UpdateProductStatus(c, adminId, pendingId, request.UpdateStatus{
		Status: "rejected",
	})
	assert.ErrorIsf(t, err, inErrors.ErrModerationState, "approved product cannot be re-moderated")

	_, err = f.service.UpdateProductStatus(c, adminId, rejectedId, request.UpdateStatus{
		Status: "approved",
	})
	assert.ErrorIsf(t, err, inErrors.ErrModerationState, "rejected product cannot be re-moderated")
}

func TestRemoveProduct(t *testing.T) {
	c := context.Background()
	f := setup(t, c)
	defer f.teardown(t)

	_, err := f.service.RemoveProduct(c, customerId, approvedId)
	assert.ErrorIsf(t, err, inErrors.ErrForbidden, "only the owner or an admin can delete")

	removed, err := f.service.RemoveProduct(c, herderId, approvedId)
	assert.NoError(t, err)
	assert.Equal(t, approvedId, removed.ID)

	_, err = f.service.FindProductById(c, approvedId)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}
