package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockQuantity es una caché materializada del libro de movimientos:
// siempre igual a InitialQuantity más la suma con signo de sus movimientos.
// Solo el motor de inventario la modifica, dentro de una transacción.
type Product struct {
	ID              string
	SupplierID      string
	Name            string
	Price           decimal.Decimal // precio de venta, no negativo
	StockQuantity   int64           // nunca negativo tras una operación confirmada
	InitialQuantity int64           // semilla del libro al crear el producto
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
