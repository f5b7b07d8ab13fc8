package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento de inventario.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Type      string `json:"type" validate:"required,oneof=In Out"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes" validate:"max=500"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	StockQuantity int64     `json:"stock_quantity"` // cantidad resultante del producto
}

// MovementListItem fila de listado de movimientos.
type MovementListItem struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementListItem `json:"items"`
	Page  PageResponse       `json:"page"`
}
