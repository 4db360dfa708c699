package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.StockAccountRepository = (*StockAccountRepo)(nil)

// StockAccountRepo implementación de StockAccountRepository sobre PostgreSQL
// (usable con pool o tx).
type StockAccountRepo struct {
	q   Querier
	ctx context.Context
}

// NewStockAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAccountRepository(q Querier) *StockAccountRepo {
	return &StockAccountRepo{q: q, ctx: context.Background()}
}

// newTxStockAccountRepository ata el repo a una transacción y al contexto del
// caller: un deadline vencido aborta la espera del FOR UPDATE.
func newTxStockAccountRepository(ctx context.Context, q Querier) *StockAccountRepo {
	return &StockAccountRepo{q: q, ctx: ctx}
}

const accountColumns = `product_id, quantity, units_sold, profit, updated_at`

func scanAccount(row pgx.Row) (*entity.StockAccount, error) {
	var a entity.StockAccount
	err := row.Scan(&a.ProductID, &a.Quantity, &a.UnitsSold, &a.Profit, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Get obtiene el agregado de stock de un producto (en cero si no tiene fila).
func (r *StockAccountRepo) Get(productID string) (*entity.StockAccount, error) {
	a, err := scanAccount(r.q.QueryRow(r.ctx,
		`SELECT `+accountColumns+` FROM stock_accounts WHERE product_id = $1`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewStockAccount(productID, time.Time{}), nil
		}
		return nil, fmt.Errorf("get stock account: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene el agregado y bloquea la fila hasta el fin de la
// transacción (SELECT FOR UPDATE): serializa los movimientos de un producto.
// Si el producto aún no tiene fila (creado antes de que la cuenta naciera con
// él), la inserta en cero y la bloquea: sin fila no hay lock que serialice.
func (r *StockAccountRepo) GetForUpdate(productID string) (*entity.StockAccount, error) {
	const query = `SELECT ` + accountColumns + ` FROM stock_accounts WHERE product_id = $1 FOR UPDATE`
	a, err := scanAccount(r.q.QueryRow(r.ctx, query, productID))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock account for update: %w", err)
	}
	_, err = r.q.Exec(r.ctx, `
		INSERT INTO stock_accounts (product_id, quantity, units_sold, profit, updated_at)
		VALUES ($1, 0, 0, 0, now())
		ON CONFLICT (product_id) DO NOTHING`, productID)
	if err != nil {
		return nil, fmt.Errorf("init stock account: %w", err)
	}
	a, err = scanAccount(r.q.QueryRow(r.ctx, query, productID))
	if err != nil {
		return nil, fmt.Errorf("get stock account for update: %w", err)
	}
	return a, nil
}

// Upsert inserta o actualiza el agregado del producto.
func (r *StockAccountRepo) Upsert(account *entity.StockAccount) error {
	query := `
		INSERT INTO stock_accounts (product_id, quantity, units_sold, profit, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, units_sold = EXCLUDED.units_sold,
		              profit = EXCLUDED.profit, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(r.ctx, query,
		account.ProductID, account.Quantity, account.UnitsSold, account.Profit, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock account: %w", err)
	}
	return nil
}

// GetMany devuelve los agregados de varios productos (en cero los que no tengan fila).
func (r *StockAccountRepo) GetMany(productIDs []string) (map[string]*entity.StockAccount, error) {
	out := make(map[string]*entity.StockAccount, len(productIDs))
	for _, id := range productIDs {
		out[id] = entity.NewStockAccount(id, time.Time{})
	}
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(r.ctx,
		`SELECT `+accountColumns+` FROM stock_accounts WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get stock accounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock account: %w", err)
		}
		out[a.ProductID] = a
	}
	return out, rows.Err()
}
