package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// SalePrice es obligatorio para OUTBOUND; en INBOUND se ignora.
type RegisterMovementRequest struct {
	ProductID       string           `json:"product_id"`
	Type            string           `json:"type"`
	Quantity        int64            `json:"quantity"`
	Reason          string           `json:"reason"`
	ResponsibleUser string           `json:"responsible_user"`
	SalePrice       *decimal.Decimal `json:"sale_price,omitempty"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Type            string          `json:"type"`
	Quantity        int64           `json:"quantity"`
	Reason          string          `json:"reason"`
	ResponsibleUser string          `json:"responsible_user"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	Date            time.Time       `json:"date"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
