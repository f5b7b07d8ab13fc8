package orders

import (
	"context"

	"github.com/dcastano/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de órdenes, movimientos y productos atados a esa tx.
// Cambio de estado y movimiento de stock ocurren juntos o no ocurren.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.SaleOrderRepository,
	) error) error
}
