package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// MovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos más recientes primero; productID vacío = todos.
	List(productID string, limit, offset int) ([]*entity.Movement, error)
	Count(productID string) (int, error)
}
