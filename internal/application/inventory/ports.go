package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando
// repositorios atados a esa transacción. Garantiza que el append del
// movimiento y la mutación del agregado se observen como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		accountRepo repository.StockAccountRepository,
	) error) error
}

// LowStockEvent se emite cuando una salida deja la cantidad de un producto
// en o por debajo de su mínimo.
type LowStockEvent struct {
	ProductID   string    `json:"product_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Quantity    int64     `json:"quantity"`
	MinQuantity int64     `json:"min_quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AlertPublisher publica alertas de stock bajo (Kafka en producción, no-op si
// no hay broker configurado). Mejor esfuerzo: un fallo de publicación no
// revierte el movimiento ya confirmado.
type AlertPublisher interface {
	PublishLowStock(ctx context.Context, event LowStockEvent) error
}
