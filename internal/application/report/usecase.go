package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-ledger/internal/domain/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// InventoryReportLine una fila del reporte: producto + agregado de stock.
type InventoryReportLine struct {
	SKU          string
	Name         string
	CategoryName string
	Quantity     int64
	MinQuantity  int64
	UnitsSold    int64
	Profit       decimal.Decimal
	Status       string
}

// InventoryReport datos completos del reporte de inventario.
type InventoryReport struct {
	GeneratedAt   time.Time
	CategoryName  string // vacío = todas las categorías
	Lines         []InventoryReportLine
	TotalProducts int
	TotalUnits    int64
	TotalProfit   decimal.Decimal
	LowStockCount int
}

// InventoryPDFGenerator puerto de renderizado del reporte.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report *InventoryReport) ([]byte, error)
}

// UseCase arma el reporte de inventario y lo renderiza a PDF.
type UseCase struct {
	productRepo  repository.ProductRepository
	accountRepo  repository.StockAccountRepository
	categoryRepo repository.CategoryRepository
	generator    InventoryPDFGenerator
	now          func() time.Time
}

func NewUseCase(
	productRepo repository.ProductRepository,
	accountRepo repository.StockAccountRepository,
	categoryRepo repository.CategoryRepository,
	generator InventoryPDFGenerator,
	nowFn func() time.Time,
) *UseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &UseCase{
		productRepo:  productRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		generator:    generator,
		now:          nowFn,
	}
}

// reportPageSize máximo de productos incluidos en un reporte.
const reportPageSize = 1000

// GenerateInventoryPDF arma el reporte (opcionalmente filtrado por categoría)
// y devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *UseCase) GenerateInventoryPDF(ctx context.Context, categoryID string) (pdfBytes []byte, filename string, err error) {
	report := &InventoryReport{
		GeneratedAt: uc.now(),
		TotalProfit: decimal.Zero,
	}

	if categoryID != "" {
		category, cErr := uc.categoryRepo.GetByID(categoryID)
		if cErr != nil {
			return nil, "", fmt.Errorf("report: obtener categoría: %w", cErr)
		}
		if category != nil {
			report.CategoryName = category.Name
		}
	}

	products, err := uc.productRepo.List(categoryID, reportPageSize, 0)
	if err != nil {
		return nil, "", fmt.Errorf("report: listar productos: %w", err)
	}

	ids := make([]string, 0, len(products))
	categoryIDs := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		categoryIDs = append(categoryIDs, p.CategoryID)
	}
	accounts, err := uc.accountRepo.GetMany(ids)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener agregados: %w", err)
	}
	categories, err := uc.categoryRepo.GetMany(categoryIDs)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener categorías: %w", err)
	}

	report.Lines = make([]InventoryReportLine, 0, len(products))
	for _, p := range products {
		line := InventoryReportLine{
			SKU:         p.SKU,
			Name:        p.Name,
			MinQuantity: p.MinQuantity,
			Profit:      decimal.Zero,
			Status:      inventory.StatusOutOfStock,
		}
		if cat := categories[p.CategoryID]; cat != nil {
			line.CategoryName = cat.Name
		}
		if acc := accounts[p.ID]; acc != nil {
			line.Quantity = acc.Quantity
			line.UnitsSold = acc.UnitsSold
			line.Profit = acc.Profit
			line.Status = inventory.StockStatus(acc.Quantity, p.MinQuantity)
		}
		report.TotalUnits += line.Quantity
		report.TotalProfit = report.TotalProfit.Add(line.Profit)
		if line.Status != inventory.StatusInStock {
			report.LowStockCount++
		}
		report.Lines = append(report.Lines, line)
	}
	report.TotalProducts = len(report.Lines)

	pdfBytes, err = uc.generator.GenerateInventoryPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("report: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("inventario_%s.pdf", report.GeneratedAt.Format("20060102_150405"))
	return pdfBytes, filename, nil
}
