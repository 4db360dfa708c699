package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Las cantidades y los
// acumulados financieros NO viven aquí: se mantienen en StockAccount y solo
// cambian vía movimientos.
type Product struct {
	ID          string
	SKU         string // único
	Name        string
	Description string
	UnitMeasure string
	CostPrice   decimal.Decimal // precio de proveedor
	SalePrice   decimal.Decimal // precio de venta por defecto
	MinQuantity int64           // umbral de stock bajo
	CategoryID  string
	SupplierID  string // vacío si no tiene proveedor asignado
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
