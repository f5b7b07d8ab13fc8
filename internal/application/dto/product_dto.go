package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialQuantity es la semilla del libro de inventario.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	SupplierID      string          `json:"supplier_id" validate:"required,uuid4"`
	Price           decimal.Decimal `json:"price"`
	InitialQuantity int64           `json:"initial_quantity" validate:"min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplier_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
