package repository

import "github.com/dcastano/almacen-api/internal/domain/entity"

// OrderListRow fila de listado de órdenes con el nombre del producto.
type OrderListRow struct {
	Order       entity.SaleOrder
	ProductName string
}

// SaleOrderRepository puerto de persistencia para órdenes de venta.
type SaleOrderRepository interface {
	Create(order *entity.SaleOrder) error
	GetByID(id string) (*entity.SaleOrder, error)
	// GetForUpdate obtiene la orden y bloquea su fila (SELECT FOR UPDATE).
	// Devuelve nil si no existe.
	GetForUpdate(id string) (*entity.SaleOrder, error)
	UpdateStatus(order *entity.SaleOrder) error
	// Search lista órdenes cuyo producto contiene el filtro en el nombre,
	// opcionalmente restringido por estado (vacío = todos).
	Search(productFilter string, status entity.OrderStatus, limit, offset int) ([]OrderListRow, error)
}
