package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAccount es el agregado por producto derivado del libro de movimientos:
// cantidad actual, unidades vendidas acumuladas y utilidad acumulada.
// Es una caché del libro (la fuente de verdad son los movimientos) y solo la
// muta el motor de movimientos dentro de una transacción.
type StockAccount struct {
	ProductID string
	Quantity  int64 // invariante: nunca negativa
	UnitsSold int64 // suma de cantidades OUTBOUND; monótona no decreciente
	Profit    decimal.Decimal
	UpdatedAt time.Time
}

// NewStockAccount inicializa el agregado en cero para un producto recién creado.
func NewStockAccount(productID string, now time.Time) *StockAccount {
	return &StockAccount{
		ProductID: productID,
		Quantity:  0,
		UnitsSold: 0,
		Profit:    decimal.Zero,
		UpdatedAt: now,
	}
}
