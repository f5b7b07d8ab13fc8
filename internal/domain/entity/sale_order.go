package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado cerrado de una orden de venta.
type OrderStatus string

// Estados de la orden. Pending es inicial; Cancelled y Completed son terminales.
const (
	OrderPending   OrderStatus = "Pending"
	OrderCancelled OrderStatus = "Cancelled"
	OrderCompleted OrderStatus = "Completed"
)

// IsValid reporta si el estado es uno de los valores cerrados.
func (s OrderStatus) IsValid() bool {
	return s == OrderPending || s == OrderCancelled || s == OrderCompleted
}

// CanTransitionTo reporta si la transición s -> target está permitida.
// Solo Pending puede transicionar; los estados terminales no cambian.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s != OrderPending {
		return false
	}
	return target == OrderCancelled || target == OrderCompleted
}

// SaleOrder representa una orden de venta con reserva de stock al crearla:
// la cantidad se descuenta en la creación, se repone al cancelar y
// completar no toca el inventario.
type SaleOrder struct {
	ID         string
	ProductID  string
	Quantity   int64           // positivo, congelado al crear
	TotalPrice decimal.Decimal // precio × cantidad al momento de crear
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
