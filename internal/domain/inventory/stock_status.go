package inventory

// Estados de stock de un producto.
const (
	StatusOutOfStock = "OUT_OF_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusInStock    = "IN_STOCK"
)

// StockStatus clasifica el stock de un producto (servicio de dominio, puro):
// cantidad <= 0 agotado; 0 < cantidad <= mínimo bajo; el resto disponible.
func StockStatus(quantity, minimum int64) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= minimum:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
