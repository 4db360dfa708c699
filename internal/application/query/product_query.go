package query

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ProductQueryUseCase consultas de solo lectura sobre el catálogo enriquecidas
// con el agregado de stock. Las listas toman un snapshot consistente: un
// producto nunca aparece con el agregado a medio actualizar.
type ProductQueryUseCase struct {
	productRepo  repository.ProductRepository
	accountRepo  repository.StockAccountRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewProductQueryUseCase(
	productRepo repository.ProductRepository,
	accountRepo repository.StockAccountRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductQueryUseCase {
	return &ProductQueryUseCase{
		productRepo:  productRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// List devuelve una página de productos ordenada por id ascendente, con
// cantidad, unidades vendidas, utilidad y estado de stock por producto.
// categoryID vacío lista todas las categorías.
func (uc *ProductQueryUseCase) List(page dto.PageRequest, categoryID string) (*dto.ProductListResponse, error) {
	page.DefaultPage()

	total, err := uc.productRepo.Count(categoryID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(categoryID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(products))
	categoryIDs := make([]string, 0, len(products))
	supplierIDs := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		categoryIDs = append(categoryIDs, p.CategoryID)
		if p.SupplierID != "" {
			supplierIDs = append(supplierIDs, p.SupplierID)
		}
	}

	accounts, err := uc.accountRepo.GetMany(ids)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.GetMany(categoryIDs)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.supplierRepo.GetMany(supplierIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductView, 0, len(products))
	for _, p := range products {
		view := dto.ProductView{
			ProductResponse: *usecase.ToProductResponse(p),
			TotalProfit:     decimal.Zero,
			StockStatus:     inventory.StatusOutOfStock,
		}
		if acc := accounts[p.ID]; acc != nil {
			view.Quantity = acc.Quantity
			view.UnitsSold = acc.UnitsSold
			view.TotalProfit = acc.Profit
			view.StockStatus = inventory.StockStatus(acc.Quantity, p.MinQuantity)
		}
		if cat := categories[p.CategoryID]; cat != nil {
			view.CategoryName = cat.Name
		}
		if sup := suppliers[p.SupplierID]; sup != nil {
			view.SupplierName = sup.Name
		}
		items = append(items, view)
	}

	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Page, page.Size, total),
	}, nil
}

// GetView devuelve un producto con sus campos derivados.
func (uc *ProductQueryUseCase) GetView(id string) (*dto.ProductView, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	view := dto.ProductView{
		ProductResponse: *usecase.ToProductResponse(product),
		TotalProfit:     decimal.Zero,
		StockStatus:     inventory.StatusOutOfStock,
	}
	account, err := uc.accountRepo.Get(product.ID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		view.Quantity = account.Quantity
		view.UnitsSold = account.UnitsSold
		view.TotalProfit = account.Profit
		view.StockStatus = inventory.StockStatus(account.Quantity, product.MinQuantity)
	}
	if category, err := uc.categoryRepo.GetByID(product.CategoryID); err == nil && category != nil {
		view.CategoryName = category.Name
	}
	if product.SupplierID != "" {
		if supplier, err := uc.supplierRepo.GetByID(product.SupplierID); err == nil && supplier != nil {
			view.SupplierName = supplier.Name
		}
	}
	return &view, nil
}

// ProfitByProduct devuelve la utilidad acumulada por producto, opcionalmente
// filtrada por categoría.
func (uc *ProductQueryUseCase) ProfitByProduct(page dto.PageRequest, categoryID string) ([]dto.ProductProfitView, *dto.PageResponse, error) {
	page.DefaultPage()

	total, err := uc.productRepo.Count(categoryID)
	if err != nil {
		return nil, nil, err
	}
	products, err := uc.productRepo.List(categoryID, page.Size, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	accounts, err := uc.accountRepo.GetMany(ids)
	if err != nil {
		return nil, nil, err
	}

	views := make([]dto.ProductProfitView, 0, len(products))
	for _, p := range products {
		view := dto.ProductProfitView{
			ProductID:   p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			CostPrice:   p.CostPrice,
			SalePrice:   p.SalePrice,
			TotalProfit: decimal.Zero,
		}
		if acc := accounts[p.ID]; acc != nil {
			view.UnitsSold = acc.UnitsSold
			view.TotalProfit = acc.Profit
		}
		views = append(views, view)
	}
	meta := dto.NewPageResponse(page.Page, page.Size, total)
	return views, &meta, nil
}
