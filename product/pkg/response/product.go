package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	HerderID    uuid.UUID       `json:"herderId"`
	HerderName  string          `json:"herderName"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Images      []string        `json:"images"`
	Quantity    int32           `json:"quantity"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type UploadedImage struct {
	URL string `json:"url"`
}
