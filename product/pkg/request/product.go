package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	Title       string          `validate:"required"                    json:"title"`
	Description string          `validate:"required"                    json:"description"`
	Price       decimal.Decimal `validate:"required"                    json:"price"`
	Unit        string          `validate:"required"                    json:"unit"`
	Category    string          `validate:"required,oneof=meat dairy"   json:"category"`
	SubCategory string          `validate:"required"                    json:"subCategory"`
	Images      []string        `validate:"required,min=1,dive,url"     json:"images"`
	Quantity    int32           `validate:"gte=0"                       json:"quantity"`
}

type UpdateStatus struct {
	Status string `validate:"required,oneof=approved rejected" json:"status"`
}

type FindProducts struct {
	Category      string    `json:"category"`
	SubCategory   string    `json:"subCategory"`
	Search        string    `json:"search"`
	CreatedBefore time.Time `json:"createdBefore"`
	Limit         int32     `json:"limit"`
}

type UploadImage struct {
	Image string `validate:"required,base64" json:"image"`
}
