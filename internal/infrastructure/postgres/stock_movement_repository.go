package postgres

import (
	"context"
	"fmt"

	"github.com/dcastano/almacen-api/internal/domain/entity"
	"github.com/dcastano/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Append-only: solo INSERT y SELECT, nunca UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de movimientos.
// Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento en el libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, quantity, type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Quantity,
		string(movement.Type), movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, quantity, type, notes, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.Type, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// Search lista movimientos filtrando por nombre de producto (coincidencia
// parcial, insensible a mayúsculas y tildes; el filtro llega ya plegado),
// más recientes primero. Filtro vacío lista todos.
func (r *StockMovementRepo) Search(productFilter string, limit, offset int) ([]repository.MovementListRow, error) {
	query := `
		SELECT m.id, m.product_id, m.quantity, m.type, m.notes, m.created_at, p.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE ($1 = '' OR ` + foldedExpr("p.name") + ` LIKE '%' || $1 || '%')
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search stock movements: %w", err)
	}
	defer rows.Close()

	var result []repository.MovementListRow
	for rows.Next() {
		var row repository.MovementListRow
		m := &row.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.Type, &m.Notes, &m.CreatedAt, &row.ProductName); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
