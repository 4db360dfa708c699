package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
)

func newProductUC(t *testing.T) (*memory.Store, *usecase.ProductUseCase, func() time.Time) {
	t.Helper()
	store := memory.NewStore()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	categoryRepo := memory.NewCategoryRepository(store)
	require.NoError(t, categoryRepo.Create(&entity.Category{
		ID: "cat-1", Name: "Bebidas", Code: "BEB", Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}))
	supplierRepo := memory.NewSupplierRepository(store)
	require.NoError(t, supplierRepo.Create(&entity.Supplier{
		ID: "sup-1", Name: "Proveedor Uno", CreatedAt: now, UpdatedAt: now,
	}))

	uc := usecase.NewProductUseCase(memory.NewProductRepository(store), categoryRepo, supplierRepo, clock)
	return store, uc, clock
}

func TestProductCreate(t *testing.T) {
	_, uc, _ := newProductUC(t)

	out, err := uc.Create(dto.CreateProductRequest{
		SKU:         "SKU-001",
		Name:        "Café en grano 1kg",
		CostPrice:   decimal.RequireFromString("10.00"),
		SalePrice:   decimal.RequireFromString("15.00"),
		MinQuantity: 10,
		CategoryID:  "cat-1",
		SupplierID:  "sup-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.Active)
	assert.Equal(t, int64(10), out.MinQuantity)

	// SKU duplicado.
	_, err = uc.Create(dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Otro", CategoryID: "cat-1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Categoría inexistente.
	_, err = uc.Create(dto.CreateProductRequest{
		SKU: "SKU-002", Name: "Otro", CategoryID: "cat-zzz",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Proveedor inexistente.
	_, err = uc.Create(dto.CreateProductRequest{
		SKU: "SKU-003", Name: "Otro", CategoryID: "cat-1", SupplierID: "sup-zzz",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El proveedor es opcional.
	_, err = uc.Create(dto.CreateProductRequest{
		SKU: "SKU-004", Name: "Sin proveedor", CategoryID: "cat-1",
	})
	assert.NoError(t, err)

	// Umbral negativo rechazado.
	_, err = uc.Create(dto.CreateProductRequest{
		SKU: "SKU-005", Name: "Otro", CategoryID: "cat-1", MinQuantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_SoloCatalogo(t *testing.T) {
	_, uc, _ := newProductUC(t)

	created, err := uc.Create(dto.CreateProductRequest{
		SKU:         "SKU-001",
		Name:        "Café en grano 1kg",
		CostPrice:   decimal.RequireFromString("10.00"),
		SalePrice:   decimal.RequireFromString("15.00"),
		MinQuantity: 10,
		CategoryID:  "cat-1",
	})
	require.NoError(t, err)

	name := "Café en grano premium 1kg"
	minQty := int64(25)
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name:        &name,
		MinQuantity: &minQty,
	})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.Equal(t, int64(25), out.MinQuantity)
	// Los campos no enviados no cambian.
	assert.Equal(t, "SKU-001", out.SKU)
	assert.True(t, out.SalePrice.Equal(decimal.RequireFromString("15.00")))

	// Producto inexistente.
	_, err = uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Umbral negativo rechazado.
	bad := int64(-5)
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{MinQuantity: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDisable(t *testing.T) {
	_, uc, _ := newProductUC(t)

	created, err := uc.Create(dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Café", CategoryID: "cat-1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Disable(created.ID))

	out, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, out, "desactivar es borrado lógico: el producto sigue consultable")
	assert.False(t, out.Active)

	assert.ErrorIs(t, uc.Disable("no-existe"), domain.ErrNotFound)
}
