package request

import (
	"github.com/google/uuid"
)

type CheckoutItem struct {
	ProductId uuid.UUID `validate:"required,uuid" json:"productId"`
	Quantity  int32     `validate:"required,gt=0" json:"quantity"`
}

type Checkout struct {
	Items           []CheckoutItem `validate:"required,min=1,dive" json:"items"`
	ContactPhone    string         `validate:"required"            json:"contactPhone"`
	DeliveryAddress string         `validate:"required"            json:"deliveryAddress"`
}

type UpdateStatus struct {
	Status string `validate:"required,oneof=pending confirmed shipped delivered cancelled" json:"status"`
}
