package request

import (
	"github.com/google/uuid"
)

type AddItem struct {
	ProductId uuid.UUID `validate:"required,uuid" json:"productId"`
	Quantity  int32     `validate:"required,gt=0" json:"quantity"`
}

type UpdateItem struct {
	Quantity int32 `json:"quantity"`
}

type Checkout struct {
	ContactPhone    string `validate:"required" json:"contactPhone"`
	DeliveryAddress string `validate:"required" json:"deliveryAddress"`
}
