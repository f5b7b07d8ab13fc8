package repository

import "github.com/dcastano/almacen-api/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByEmail(email string) (*entity.Supplier, error)
	// Search lista proveedores cuyo nombre o email contiene el filtro
	// (insensible a mayúsculas). Filtro vacío lista todos, paginado.
	Search(filter string, limit, offset int) ([]*entity.Supplier, error)
}
