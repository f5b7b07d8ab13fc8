package repository

import "github.com/dcastano/almacen-api/internal/domain/entity"

// MovementListRow fila de listado de movimientos con el nombre del producto.
type MovementListRow struct {
	Movement    entity.StockMovement
	ProductName string
}

// StockMovementRepository puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// Search lista movimientos cuyo producto contiene el filtro en el nombre,
	// más recientes primero. Filtro vacío lista todos, paginado.
	Search(productFilter string, limit, offset int) ([]MovementListRow, error)
}
