// Package events implementa la publicación de alertas de stock bajo en Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
)

// KafkaPublisher implementa inventory.AlertPublisher sobre un kafka.Writer.
// Las alertas se particionan por ProductID para mantener orden por producto.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher construye el publisher para el topic de alertas.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer}
}

// PublishLowStock serializa el evento a JSON y lo escribe en el topic.
func (p *KafkaPublisher) PublishLowStock(ctx context.Context, event inventory.LowStockEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProductID),
		Value: data,
		Time:  time.Now(),
	})
}

// Close cierra el writer subyacente.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
