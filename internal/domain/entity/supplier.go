package entity

import "time"

// Supplier representa un proveedor; un proveedor puede tener muchos productos.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
