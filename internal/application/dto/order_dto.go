package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleOrderRequest entrada para crear una orden de venta.
type CreateSaleOrderRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// SaleOrderResponse salida de una orden de venta.
type SaleOrderResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SaleOrderListItem fila de listado de órdenes.
type SaleOrderListItem struct {
	SaleOrderResponse
	ProductName string `json:"product_name"`
}

// SaleOrderListResponse lista paginada de órdenes.
type SaleOrderListResponse struct {
	Items []SaleOrderListItem `json:"items"`
	Page  PageResponse        `json:"page"`
}
