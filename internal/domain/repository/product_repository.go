package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List devuelve productos ordenados por id ascendente (paginación estable)
	// con filtro opcional por categoría; categoryID vacío = todas.
	List(categoryID string, limit, offset int) ([]*entity.Product, error)
	Count(categoryID string) (int, error)
	Disable(id string) error
}
