package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	UnitMeasure string          `json:"unit_measure"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	MinQuantity int64           `json:"min_quantity"`
	CategoryID  string          `json:"category_id" validate:"required"`
	SupplierID  string          `json:"supplier_id,omitempty"`
}

// UpdateProductRequest entrada para actualizar atributos de catálogo.
// Cantidad, unidades vendidas y utilidad no son editables: se derivan de movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitMeasure *string          `json:"unit_measure"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	MinQuantity *int64           `json:"min_quantity"`
	CategoryID  *string          `json:"category_id"`
	SupplierID  *string          `json:"supplier_id"`
}

// ProductResponse salida de un producto (solo catálogo).
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitMeasure string          `json:"unit_measure"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	MinQuantity int64           `json:"min_quantity"`
	CategoryID  string          `json:"category_id"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductView producto con los campos derivados del agregado de stock,
// más los nombres de categoría y proveedor para el listado.
type ProductView struct {
	ProductResponse
	Quantity     int64           `json:"quantity"`
	UnitsSold    int64           `json:"units_sold"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	StockStatus  string          `json:"stock_status"`
	CategoryName string          `json:"category_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
}

// ProductListResponse lista paginada de productos con campos derivados.
type ProductListResponse struct {
	Items []ProductView `json:"items"`
	Page  PageResponse  `json:"page"`
}

// ProductProfitView utilidad acumulada de un producto.
type ProductProfitView struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	UnitsSold   int64           `json:"units_sold"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}
