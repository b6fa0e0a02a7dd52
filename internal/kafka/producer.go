package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"shopease-main/internal/shopping_cart"
)

type Producer struct {
	Writer WriterInterface // Используем интерфейс
	Logger *zap.SugaredLogger
}

func NewProducer(brokers []string, topic string, logger *zap.SugaredLogger) *Producer {
	return &Producer{
		Writer: &kafkaWriterWrapper{ // Обёртка над реальным Writer
			Writer: &kafka.Writer{
				Addr:     kafka.TCP(brokers...),
				Topic:    topic,
				Balancer: &kafka.Hash{},
			},
		},
		Logger: logger,
	}
}

// Обёртка для реализации интерфейса
type kafkaWriterWrapper struct {
	Writer *kafka.Writer
}

func (w *kafkaWriterWrapper) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return w.Writer.WriteMessages(ctx, msgs...)
}

func (w *kafkaWriterWrapper) Close() error {
	return w.Writer.Close()
}

// SendEvent пишет событие с ключом корзины, чтобы события одной корзины шли в одну партицию
func (p *Producer) SendEvent(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CartKey),
		Value: value,
	})

	if err != nil {
		p.Logger.Errorf("Failed to write Kafka message: %v", err)
		return err
	}

	return nil
}

// PlaceOrder отправляет оформленный заказ событием checkout
func (p *Producer) PlaceOrder(ctx context.Context, order shopping_cart.Order) error {
	items := make([]Item, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, Item{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price.StringFixed(2),
			Quantity: line.Quantity,
		})
	}

	return p.SendEvent(ctx, Event{
		CartKey:   order.CartKey,
		Type:      Checkout,
		OrderID:   order.ID,
		Items:     items,
		Total:     order.Total.StringFixed(2),
		Timestamp: order.PlacedAt,
	})
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
