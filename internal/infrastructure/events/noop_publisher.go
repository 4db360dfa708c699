package events

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// NoopPublisher registra la alerta en el log y no publica nada. Se usa cuando
// no hay brokers de Kafka configurados.
type NoopPublisher struct {
	log *logger.Logger
}

func NewNoopPublisher(log *logger.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) PublishLowStock(_ context.Context, event inventory.LowStockEvent) error {
	p.log.Warn().
		Str("product_id", event.ProductID).
		Str("sku", event.SKU).
		Int64("quantity", event.Quantity).
		Int64("min_quantity", event.MinQuantity).
		Msg("alerta de stock bajo")
	return nil
}
