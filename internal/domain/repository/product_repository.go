package repository

import "github.com/dcastano/almacen-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// UpdateStock solo debe invocarse dentro de la transacción del motor de
// inventario, tras GetForUpdate; ningún otro componente muta StockQuantity.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
	// Devuelve nil si no existe.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, quantity int64) error
	// Search lista productos cuyo nombre contiene el filtro (insensible a
	// mayúsculas). Filtro vacío lista todos, paginado.
	Search(filter string, limit, offset int) ([]*entity.Product, error)
}
