// Package memory implementa el almacén del libro de stock en memoria.
// Se usa en tests y como modo de arranque sin base de datos. Reproduce las
// garantías del adaptador PostgreSQL: a lo sumo una aplicación de movimiento
// en vuelo por producto (candado por producto adquirido respetando el
// deadline del contexto) y commit atómico bajo el candado global de lectura/
// escritura, de modo que ningún lector ve el agregado sin su movimiento.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store almacén en memoria. El estado confirmado vive en los mapas protegidos
// por mu; las transacciones escriben staged y se aplican en commit.
type Store struct {
	mu         sync.RWMutex
	products   map[string]entity.Product
	accounts   map[string]entity.StockAccount
	movements  []entity.Movement
	movByID    map[string]int
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	users      map[string]entity.User

	lockMu       sync.Mutex
	productLocks map[string]chan struct{}
}

// NewStore construye el almacén vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]entity.Product),
		accounts:     make(map[string]entity.StockAccount),
		movByID:      make(map[string]int),
		categories:   make(map[string]entity.Category),
		suppliers:    make(map[string]entity.Supplier),
		users:        make(map[string]entity.User),
		productLocks: make(map[string]chan struct{}),
	}
}

// Run ejecuta fn con repositorios atados a una transacción en memoria.
// Los candados por producto se adquieren dentro de fn (GetForUpdate) y se
// liberan al terminar, con Commit si fn no falla y descarte si falla.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	accountRepo repository.StockAccountRepository,
) error) error {
	tx := &txn{store: s, ctx: ctx, stagedAccounts: make(map[string]entity.StockAccount)}
	defer tx.release()

	if err := fn(&txMovementRepo{tx: tx}, &txAccountRepo{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// txn transacción en memoria: candados por producto adquiridos y escrituras
// pendientes. Una vez adquirido el candado la actualización no es interrumpible.
type txn struct {
	store          *Store
	ctx            context.Context
	held           []string
	stagedAccounts map[string]entity.StockAccount
	stagedMovs     []entity.Movement
}

// lockProduct adquiere el candado del producto. El deadline del contexto solo
// aborta ANTES de la adquisición; ya adquirido, la transacción corre completa.
func (t *txn) lockProduct(productID string) error {
	for _, id := range t.held {
		if id == productID {
			return nil
		}
	}
	if err := t.ctx.Err(); err != nil {
		return err
	}
	t.store.lockMu.Lock()
	sem, ok := t.store.productLocks[productID]
	if !ok {
		sem = make(chan struct{}, 1)
		t.store.productLocks[productID] = sem
	}
	t.store.lockMu.Unlock()

	select {
	case sem <- struct{}{}:
		t.held = append(t.held, productID)
		return nil
	case <-t.ctx.Done():
		return t.ctx.Err()
	}
}

// commit aplica movimientos y agregados bajo el candado de escritura: los
// lectores nunca observan uno sin el otro.
func (t *txn) commit() {
	t.store.mu.Lock()
	for id, acc := range t.stagedAccounts {
		t.store.accounts[id] = acc
	}
	for _, mov := range t.stagedMovs {
		t.store.movByID[mov.ID] = len(t.store.movements)
		t.store.movements = append(t.store.movements, mov)
	}
	t.store.mu.Unlock()
	t.stagedAccounts = make(map[string]entity.StockAccount)
	t.stagedMovs = nil
}

// release suelta los candados por producto adquiridos.
func (t *txn) release() {
	t.store.lockMu.Lock()
	for _, id := range t.held {
		<-t.store.productLocks[id]
	}
	t.store.lockMu.Unlock()
	t.held = nil
}

// txAccountRepo repositorio de agregados atado a la transacción.
type txAccountRepo struct {
	tx *txn
}

var _ repository.StockAccountRepository = (*txAccountRepo)(nil)

func (r *txAccountRepo) Get(productID string) (*entity.StockAccount, error) {
	if acc, ok := r.tx.stagedAccounts[productID]; ok {
		return &acc, nil
	}
	return r.tx.store.accountSnapshot(productID), nil
}

func (r *txAccountRepo) GetForUpdate(productID string) (*entity.StockAccount, error) {
	if err := r.tx.lockProduct(productID); err != nil {
		return nil, err
	}
	return r.Get(productID)
}

func (r *txAccountRepo) Upsert(account *entity.StockAccount) error {
	r.tx.stagedAccounts[account.ProductID] = *account
	return nil
}

func (r *txAccountRepo) GetMany(productIDs []string) (map[string]*entity.StockAccount, error) {
	out := make(map[string]*entity.StockAccount, len(productIDs))
	for _, id := range productIDs {
		acc, _ := r.Get(id)
		out[id] = acc
	}
	return out, nil
}

// txMovementRepo repositorio de movimientos atado a la transacción.
// El libro es append-only: solo Create escribe.
type txMovementRepo struct {
	tx *txn
}

var _ repository.MovementRepository = (*txMovementRepo)(nil)

func (r *txMovementRepo) Create(movement *entity.Movement) error {
	r.tx.stagedMovs = append(r.tx.stagedMovs, *movement)
	return nil
}

func (r *txMovementRepo) GetByID(id string) (*entity.Movement, error) {
	return NewMovementRepository(r.tx.store).GetByID(id)
}

func (r *txMovementRepo) List(productID string, limit, offset int) ([]*entity.Movement, error) {
	return NewMovementRepository(r.tx.store).List(productID, limit, offset)
}

func (r *txMovementRepo) Count(productID string) (int, error) {
	return NewMovementRepository(r.tx.store).Count(productID)
}

// accountSnapshot devuelve una copia del agregado confirmado, o uno en cero
// si el producto aún no tiene movimientos.
func (s *Store) accountSnapshot(productID string) *entity.StockAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if acc, ok := s.accounts[productID]; ok {
		return &acc
	}
	return entity.NewStockAccount(productID, time.Time{})
}
