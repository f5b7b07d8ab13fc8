package entity

import "time"

// MovementType tipo cerrado de movimiento de inventario.
type MovementType string

// Tipos de movimiento. In suma al stock, Out resta.
const (
	MovementIn  MovementType = "In"
	MovementOut MovementType = "Out"
)

// IsValid reporta si el tipo es uno de los valores cerrados.
func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut
}

// Sign devuelve +1 para entradas y -1 para salidas.
func (t MovementType) Sign() int64 {
	if t == MovementOut {
		return -1
	}
	return 1
}

// StockMovement es un registro inmutable del libro de inventario:
// se crea una vez y nunca se modifica ni se borra.
type StockMovement struct {
	ID        string
	ProductID string
	Quantity  int64 // siempre positivo; el signo lo aporta Type
	Type      MovementType
	Notes     string
	CreatedAt time.Time
}

// SignedQuantity devuelve la cantidad con el signo del tipo.
func (m *StockMovement) SignedQuantity() int64 {
	return m.Quantity * m.Type.Sign()
}
