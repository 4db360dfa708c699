package inventory

import "github.com/shopspring/decimal"

// ProfitCalculator implementa la utilidad de una salida (servicio de dominio).
// Utilidad = (PrecioVenta - PrecioCosto) * Cantidad
// Puede ser negativa si se vende por debajo del costo; el acumulado del
// agregado es la suma de estas utilidades y no depende del orden de aplicación.
func ProfitCalculator(salePrice, costPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return salePrice.Sub(costPrice).Mul(decimal.NewFromInt(quantity))
}
