package memory

import (
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo lectura del libro de movimientos sobre el almacén en memoria.
// Las escrituras fuera de transacción no existen: Create directo solo se usa
// en tests de carga inicial.
type MovementRepo struct {
	s *Store
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

// Create añade un movimiento directamente al estado confirmado.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movByID[movement.ID] = len(r.s.movements)
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if i, ok := r.s.movByID[id]; ok {
		m := r.s.movements[i]
		return &m, nil
	}
	return nil, nil
}

// List devuelve movimientos más recientes primero; productID vacío = todos.
func (r *MovementRepo) List(productID string, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Movement
	skipped := 0
	for i := len(r.s.movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.s.movements[i]
		if productID != "" && m.ProductID != productID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, &m)
	}
	return out, nil
}

// Count cuenta movimientos; productID vacío = todos.
func (r *MovementRepo) Count(productID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if productID == "" {
		return len(r.s.movements), nil
	}
	n := 0
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}
