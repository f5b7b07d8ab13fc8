package postgres

import (
	"context"
	"fmt"

	"github.com/dcastano/almacen-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo consultas de solo lectura para reportes. Lee instantáneas
// confirmadas directamente del pool, fuera de toda transacción.
type ReportingRepo struct {
	q Querier
}

// NewReportingRepository construye el adaptador de reportes.
func NewReportingRepository(q Querier) *ReportingRepo {
	return &ReportingRepo{q: q}
}

// StockLevels devuelve el nivel de stock actual por producto, con el
// proveedor, ordenado por nombre.
func (r *ReportingRepo) StockLevels(ctx context.Context, limit, offset int) ([]repository.StockLevelRow, error) {
	query := `
		SELECT p.id, p.name, s.name, p.stock_quantity
		FROM products p
		JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query stock levels: %w", err)
	}
	defer rows.Close()

	var result []repository.StockLevelRow
	for rows.Next() {
		var row repository.StockLevelRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SupplierName, &row.StockQuantity); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// LedgerAudit devuelve, por producto, la cantidad materializada junto a la
// semilla inicial y la suma con signo del libro de movimientos. La fila es
// consistente cuando stock_quantity = initial_quantity + total.
func (r *ReportingRepo) LedgerAudit(ctx context.Context) ([]repository.LedgerAuditRow, error) {
	query := `
		SELECT p.id, p.name, p.stock_quantity, p.initial_quantity,
		       COALESCE(SUM(CASE WHEN m.type = 'Out' THEN -m.quantity ELSE m.quantity END), 0)
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		GROUP BY p.id, p.name, p.stock_quantity, p.initial_quantity
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ledger audit: %w", err)
	}
	defer rows.Close()

	var result []repository.LedgerAuditRow
	for rows.Next() {
		var row repository.LedgerAuditRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.StockQuantity, &row.InitialQuantity, &row.MovementTotal); err != nil {
			return nil, fmt.Errorf("scan ledger audit: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
