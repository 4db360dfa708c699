package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// sqlCall registra una sentencia ejecutada contra el Querier falso.
type sqlCall struct {
	ctx  context.Context
	sql  string
	args []any
}

type fakeRow struct{ scan func(dest ...any) error }

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// errNoRow simula un SELECT sin resultados.
var errNoRow = fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}

// accountRow simula una fila de stock_accounts lista para escanear.
func accountRow(a *entity.StockAccount) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*string)) = a.ProductID
		*(dest[1].(*int64)) = a.Quantity
		*(dest[2].(*int64)) = a.UnitsSold
		*(dest[3].(*decimal.Decimal)) = a.Profit
		*(dest[4].(*time.Time)) = a.UpdatedAt
		return nil
	}}
}

// fakeQuerier implementa Querier registrando cada llamada; QueryRow responde
// con las filas encoladas en rows, en orden.
type fakeQuerier struct {
	mu      sync.Mutex
	calls   []sqlCall
	rows    []pgx.Row
	execErr error
}

func (f *fakeQuerier) record(ctx context.Context, sql string, args []any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sqlCall{ctx: ctx, sql: sql, args: args})
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(ctx, sql, args)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(ctx, sql, args)
	return nil, pgx.ErrNoRows
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.record(ctx, sql, args)
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rows) == 0 {
		return errNoRow
	}
	row := f.rows[0]
	f.rows = f.rows[1:]
	return row
}

func TestStockAccountRepoGetForUpdateFilaExistente(t *testing.T) {
	updated := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fq := &fakeQuerier{rows: []pgx.Row{accountRow(&entity.StockAccount{
		ProductID: "prod-1",
		Quantity:  70,
		UnitsSold: 30,
		Profit:    decimal.RequireFromString("150.00"),
		UpdatedAt: updated,
	})}}
	repo := NewStockAccountRepository(fq)

	a, err := repo.GetForUpdate("prod-1")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, int64(70), a.Quantity)
	assert.Equal(t, int64(30), a.UnitsSold)
	assert.True(t, a.Profit.Equal(decimal.RequireFromString("150.00")))

	require.Len(t, fq.calls, 1)
	assert.Contains(t, fq.calls[0].sql, "FOR UPDATE")
}

// Un producto sin fila en stock_accounts no tiene nada que un FOR UPDATE
// pueda bloquear: el repo debe insertarla en cero y volver a bloquearla, de lo
// contrario dos primeros movimientos concurrentes leerían cero sin serializar
// y el Upsert del segundo pisaría al del primero.
func TestStockAccountRepoGetForUpdateCreaFilaSiNoExiste(t *testing.T) {
	updated := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fq := &fakeQuerier{rows: []pgx.Row{
		errNoRow,
		accountRow(entity.NewStockAccount("prod-nuevo", updated)),
	}}
	repo := NewStockAccountRepository(fq)

	a, err := repo.GetForUpdate("prod-nuevo")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "prod-nuevo", a.ProductID)
	assert.Equal(t, int64(0), a.Quantity)
	assert.Equal(t, int64(0), a.UnitsSold)

	require.Len(t, fq.calls, 3)
	assert.Contains(t, fq.calls[0].sql, "FOR UPDATE")
	assert.Contains(t, fq.calls[1].sql, "INSERT INTO stock_accounts")
	assert.Contains(t, fq.calls[1].sql, "ON CONFLICT (product_id) DO NOTHING")
	assert.Contains(t, fq.calls[2].sql, "FOR UPDATE")
}

type claveCtx struct{}

// Las sentencias dentro de la transacción deben correr con el contexto del
// caller: un deadline vencido aborta la adquisición del FOR UPDATE en vez de
// esperar indefinidamente una fila contendida.
func TestTxReposPropaganElContextoDelCaller(t *testing.T) {
	ctx := context.WithValue(context.Background(), claveCtx{}, "tx-42")
	updated := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	fq := &fakeQuerier{rows: []pgx.Row{accountRow(entity.NewStockAccount("prod-1", updated))}}
	cuentas := newTxStockAccountRepository(ctx, fq)
	_, err := cuentas.GetForUpdate("prod-1")
	require.NoError(t, err)
	require.NotEmpty(t, fq.calls)
	assert.Equal(t, "tx-42", fq.calls[0].ctx.Value(claveCtx{}))

	require.NoError(t, cuentas.Upsert(entity.NewStockAccount("prod-1", updated)))
	assert.Equal(t, "tx-42", fq.calls[len(fq.calls)-1].ctx.Value(claveCtx{}))

	fq2 := &fakeQuerier{}
	movimientos := newTxMovementRepository(ctx, fq2)
	require.NoError(t, movimientos.Create(&entity.Movement{
		ID:              "mov-1",
		ProductID:       "prod-1",
		Type:            entity.MovementTypeINBOUND,
		Quantity:        10,
		Reason:          entity.ReasonPurchase,
		ResponsibleUser: "bodega",
		Date:            updated,
		CreatedAt:       updated,
	}))
	require.Len(t, fq2.calls, 1)
	assert.Equal(t, "tx-42", fq2.calls[0].ctx.Value(claveCtx{}))
}
