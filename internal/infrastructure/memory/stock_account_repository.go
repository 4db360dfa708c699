package memory

import (
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.StockAccountRepository = (*StockAccountRepo)(nil)

// StockAccountRepo lectura de agregados fuera de transacción (lado de consulta).
type StockAccountRepo struct {
	s *Store
}

// NewStockAccountRepository construye el adaptador.
func NewStockAccountRepository(s *Store) *StockAccountRepo {
	return &StockAccountRepo{s: s}
}

// Get devuelve el agregado confirmado del producto (en cero si no tiene movimientos).
func (r *StockAccountRepo) Get(productID string) (*entity.StockAccount, error) {
	return r.s.accountSnapshot(productID), nil
}

// GetForUpdate fuera de una transacción no bloquea; devuelve el snapshot.
// El bloqueo real ocurre en los repositorios atados a la transacción.
func (r *StockAccountRepo) GetForUpdate(productID string) (*entity.StockAccount, error) {
	return r.Get(productID)
}

// Upsert escribe el agregado directamente (solo carga inicial en tests).
func (r *StockAccountRepo) Upsert(account *entity.StockAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[account.ProductID] = *account
	return nil
}

// GetMany devuelve los agregados de varios productos en un snapshot consistente.
func (r *StockAccountRepo) GetMany(productIDs []string) (map[string]*entity.StockAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.StockAccount, len(productIDs))
	for _, id := range productIDs {
		if acc, ok := r.s.accounts[id]; ok {
			cp := acc
			out[id] = &cp
		} else {
			out[id] = entity.NewStockAccount(id, time.Time{})
		}
	}
	return out, nil
}
