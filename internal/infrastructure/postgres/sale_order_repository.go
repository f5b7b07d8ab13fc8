package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/almacen-api/internal/domain"
	"github.com/dcastano/almacen-api/internal/domain/entity"
	"github.com/dcastano/almacen-api/internal/domain/repository"
)

var _ repository.SaleOrderRepository = (*SaleOrderRepo)(nil)

// SaleOrderRepo implementación del puerto SaleOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type SaleOrderRepo struct {
	q Querier
}

// NewSaleOrderRepository construye el adaptador de persistencia para órdenes
// de venta. Pasar pool o tx (Querier).
func NewSaleOrderRepository(q Querier) *SaleOrderRepo {
	return &SaleOrderRepo{q: q}
}

// Create persiste una nueva orden de venta.
func (r *SaleOrderRepo) Create(order *entity.SaleOrder) error {
	query := `
		INSERT INTO sale_orders (id, product_id, quantity, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ProductID, order.Quantity, order.TotalPrice,
		string(order.Status), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *SaleOrderRepo) GetByID(id string) (*entity.SaleOrder, error) {
	query := `
		SELECT id, product_id, quantity, total_price, status, created_at, updated_at
		FROM sale_orders WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la orden y bloquea su fila (SELECT FOR UPDATE).
// Evita que dos cancelaciones concurrentes repongan stock dos veces.
func (r *SaleOrderRepo) GetForUpdate(id string) (*entity.SaleOrder, error) {
	query := `
		SELECT id, product_id, quantity, total_price, status, created_at, updated_at
		FROM sale_orders WHERE id = $1
		FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *SaleOrderRepo) scanOne(query, id string) (*entity.SaleOrder, error) {
	var o entity.SaleOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale order: %w", err)
	}
	return &o, nil
}

// UpdateStatus persiste el nuevo estado de la orden.
func (r *SaleOrderRepo) UpdateStatus(order *entity.SaleOrder) error {
	query := `
		UPDATE sale_orders SET status = $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, order.ID, string(order.Status), order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search lista órdenes filtrando por nombre de producto (coincidencia
// parcial, insensible a mayúsculas y tildes; el filtro llega ya plegado) y
// opcionalmente por estado, más recientes primero.
func (r *SaleOrderRepo) Search(productFilter string, status entity.OrderStatus, limit, offset int) ([]repository.OrderListRow, error) {
	query := `
		SELECT o.id, o.product_id, o.quantity, o.total_price, o.status, o.created_at, o.updated_at, p.name
		FROM sale_orders o
		JOIN products p ON p.id = o.product_id
		WHERE ($1 = '' OR ` + foldedExpr("p.name") + ` LIKE '%' || $1 || '%')
		  AND ($2 = '' OR o.status = $2)
		ORDER BY o.created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, productFilter, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search sale orders: %w", err)
	}
	defer rows.Close()

	var result []repository.OrderListRow
	for rows.Next() {
		var row repository.OrderListRow
		o := &row.Order
		if err := rows.Scan(
			&o.ID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.Status,
			&o.CreatedAt, &o.UpdatedAt, &row.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan sale order: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
