package response

import (
	"github.com/shopspring/decimal"

	productResponse "github.com/malchin/market/product/pkg/response"
)

type CartItem struct {
	Product  productResponse.Product `json:"product"`
	Quantity int32                   `json:"quantity"`
}

type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int32           `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
