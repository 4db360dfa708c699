package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

func productoDePrueba(now time.Time) *entity.Product {
	return &entity.Product{
		ID:          "prod-1",
		SKU:         "CAFE-500",
		Name:        "Café molido 500g",
		CategoryID:  "cat-1",
		CostPrice:   decimal.RequireFromString("10.00"),
		SalePrice:   decimal.RequireFromString("15.00"),
		MinQuantity: 10,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Crear un producto debe dejar también su cuenta de stock en cero, en la misma
// sentencia: la cuenta existe desde el primer movimiento y el FOR UPDATE
// siempre encuentra fila que bloquear.
func TestProductRepoCreateInicializaCuentaEnCero(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fq := &fakeQuerier{}
	repo := NewProductRepository(fq)

	require.NoError(t, repo.Create(productoDePrueba(now)))

	require.Len(t, fq.calls, 1)
	sql := fq.calls[0].sql
	assert.Contains(t, sql, "INSERT INTO products")
	assert.Contains(t, sql, "INSERT INTO stock_accounts")
	assert.Contains(t, sql, "SELECT id, 0, 0, 0, created_at FROM nuevo")
	assert.Len(t, fq.calls[0].args, 13)
}

func TestProductRepoCreateSKUDuplicado(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fq := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}}
	repo := NewProductRepository(fq)

	err := repo.Create(productoDePrueba(now))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
