package query_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/query"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
)

func seedMovements(t *testing.T, store *memory.Store, productID string, n int) {
	t.Helper()
	movementRepo := memory.NewMovementRepository(store)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, movementRepo.Create(&entity.Movement{
			ID:              fmt.Sprintf("mov-%s-%03d", productID, i),
			ProductID:       productID,
			Type:            entity.MovementTypeINBOUND,
			Quantity:        1,
			Reason:          entity.ReasonRestock,
			ResponsibleUser: "maria",
			SalePrice:       decimal.Zero,
			Date:            base.Add(time.Duration(i) * time.Minute),
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestMovementList_MasRecientesPrimero(t *testing.T) {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-001", Name: "Café", CategoryID: "cat-1", Active: true,
	}))
	seedMovements(t, store, "prod-1", 5)

	uc := query.NewMovementQueryUseCase(memory.NewMovementRepository(store), productRepo)

	out, err := uc.List(dto.PageRequest{Page: 0, Size: 10}, "prod-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 5)
	assert.Equal(t, "mov-prod-1-004", out.Items[0].ID, "el último registrado va primero")
	assert.Equal(t, "mov-prod-1-000", out.Items[4].ID)
	assert.Equal(t, 5, out.Page.TotalElements)
	assert.True(t, out.Page.First)
	assert.True(t, out.Page.Last)
}

func TestMovementList_PaginacionYFiltro(t *testing.T) {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-001", Name: "Café", CategoryID: "cat-1", Active: true,
	}))
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: "prod-2", SKU: "SKU-002", Name: "Té", CategoryID: "cat-1", Active: true,
	}))
	seedMovements(t, store, "prod-1", 12)
	seedMovements(t, store, "prod-2", 3)

	uc := query.NewMovementQueryUseCase(memory.NewMovementRepository(store), productRepo)

	// Sin filtro: historial completo de ambos productos.
	out, err := uc.List(dto.PageRequest{Page: 0, Size: 20}, "")
	require.NoError(t, err)
	assert.Len(t, out.Items, 15)

	// Filtrado por producto, segunda página.
	out, err = uc.List(dto.PageRequest{Page: 1, Size: 5}, "prod-1")
	require.NoError(t, err)
	assert.Len(t, out.Items, 5)
	assert.Equal(t, 12, out.Page.TotalElements)
	assert.Equal(t, 3, out.Page.TotalPages)
	for _, item := range out.Items {
		assert.Equal(t, "prod-1", item.ProductID)
	}

	// Filtro por producto inexistente: error, no lista vacía.
	_, err = uc.List(dto.PageRequest{Page: 0, Size: 5}, "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMovementGetByID(t *testing.T) {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-001", Name: "Café", CategoryID: "cat-1", Active: true,
	}))
	seedMovements(t, store, "prod-1", 1)

	uc := query.NewMovementQueryUseCase(memory.NewMovementRepository(store), productRepo)

	out, err := uc.GetByID("mov-prod-1-000")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", out.ProductID)

	_, err = uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
