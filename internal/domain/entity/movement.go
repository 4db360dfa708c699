package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeINBOUND  = "INBOUND"  // entrada: aumenta stock
	MovementTypeOUTBOUND = "OUTBOUND" // salida: disminuye stock
)

// Motivos permitidos por tipo de movimiento.
const (
	ReasonPurchase = "PURCHASE" // compra a proveedor
	ReasonRestock  = "RESTOCK"  // reposición
	ReasonReturn   = "RETURN"   // devolución de cliente

	ReasonSale   = "SALE"   // venta
	ReasonLoss   = "LOSS"   // pérdida
	ReasonDamage = "DAMAGE" // avería
)

// reasonsByType mapea cada tipo de movimiento a sus motivos válidos.
var reasonsByType = map[string]map[string]bool{
	MovementTypeINBOUND:  {ReasonPurchase: true, ReasonRestock: true, ReasonReturn: true},
	MovementTypeOUTBOUND: {ReasonSale: true, ReasonLoss: true, ReasonDamage: true},
}

// ValidMovementType indica si el tipo es INBOUND u OUTBOUND.
func ValidMovementType(t string) bool {
	_, ok := reasonsByType[t]
	return ok
}

// ValidReason indica si el motivo pertenece al conjunto permitido para el tipo.
func ValidReason(movementType, reason string) bool {
	return reasonsByType[movementType][reason]
}

// Movement representa un movimiento de stock ya aceptado. Es el registro
// canónico del libro: append-only, nunca se actualiza ni se borra, y el
// agregado por producto siempre es reconstruible sumando sus cantidades.
type Movement struct {
	ID              string
	ProductID       string
	Type            string
	Quantity        int64 // siempre positivo; el signo lo da Type
	Reason          string
	ResponsibleUser string
	SalePrice       decimal.Decimal // precio de venta aplicado; cero en entradas
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string
}
