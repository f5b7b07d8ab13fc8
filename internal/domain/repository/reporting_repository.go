package repository

import "context"

// StockLevelRow nivel de stock actual de un producto.
type StockLevelRow struct {
	ProductID     string
	ProductName   string
	SupplierName  string
	StockQuantity int64
}

// LedgerAuditRow compara la cantidad materializada contra el libro:
// StockQuantity debe ser igual a InitialQuantity + MovementTotal.
type LedgerAuditRow struct {
	ProductID       string
	ProductName     string
	StockQuantity   int64
	InitialQuantity int64
	MovementTotal   int64 // suma con signo de los movimientos
}

// Consistent reporta si la fila cumple el invariante del libro.
func (r LedgerAuditRow) Consistent() bool {
	return r.StockQuantity == r.InitialQuantity+r.MovementTotal
}

// ReportingRepository consultas de solo lectura para reportes.
// Los reportes leen instantáneas confirmadas; no participan en transacciones.
type ReportingRepository interface {
	StockLevels(ctx context.Context, limit, offset int) ([]StockLevelRow, error)
	// LedgerAudit devuelve una fila por producto con los totales del libro.
	LedgerAudit(ctx context.Context) ([]LedgerAuditRow, error)
}
