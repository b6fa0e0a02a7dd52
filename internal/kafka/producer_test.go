package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"shopease-main/internal/kafka"
	"shopease-main/internal/mocks"
	"shopease-main/internal/shopping_cart"
)

// fakeWriter реализует WriterInterface и просто запоминает, какие сообщения ему передали.
type fakeWriter struct {
	lastMessages []kafkago.Message
	returnError  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	// Запоминаем все пришедшие сообщения
	f.lastMessages = append(f.lastMessages, msgs...)
	return f.returnError
}

func (f *fakeWriter) Close() error {
	return nil
}

func zapTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	logger, err := zap.NewDevelopmentConfig().Build(zap.AddCallerSkip(1))
	if err != nil {
		t.Fatalf("не удалось создать zap-логгер: %v", err)
	}
	return logger.Sugar()
}

func TestProducer_SendEvent_Success(t *testing.T) {
	logger := zapTestLogger(t)
	defer func() { _ = logger.Sync() }()

	fw := &fakeWriter{}
	p := &kafka.Producer{
		Writer: fw,
		Logger: logger,
	}

	evt := kafka.Event{
		CartKey:   "shopEaseCart:user1",
		Type:      kafka.AddToCart,
		Items:     []kafka.Item{{ID: "sku1", Name: "Shirt", Price: "499.00", Quantity: 1}},
		Timestamp: time.Now().UTC(),
	}

	if err := p.SendEvent(context.Background(), evt); err != nil {
		t.Fatalf("ожидали, что SendEvent не вернёт ошибку, но получили: %v", err)
	}

	if len(fw.lastMessages) != 1 {
		t.Fatalf("ожидали 1 записанное сообщение, но получили %d", len(fw.lastMessages))
	}
	assert.Equal(t, "shopEaseCart:user1", string(fw.lastMessages[0].Key))

	var decoded kafka.Event
	if err := json.Unmarshal(fw.lastMessages[0].Value, &decoded); err != nil {
		t.Fatalf("не удалось разобрать записанное сообщение как JSON: %v", err)
	}
	assert.Equal(t, evt.CartKey, decoded.CartKey)
	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Items, decoded.Items)
}

func TestProducer_SendEvent_WriteError(t *testing.T) {
	logger := zapTestLogger(t)
	defer func() { _ = logger.Sync() }()

	// fakeWriter сконфигурирован так, чтобы возвращать ошибку при записи
	fw := &fakeWriter{returnError: errors.New("write failed")}
	p := &kafka.Producer{
		Writer: fw,
		Logger: logger,
	}

	evt := kafka.Event{
		CartKey:   "shopEaseCart:user2",
		Type:      kafka.Checkout,
		Timestamp: time.Now().UTC(),
	}

	if err := p.SendEvent(context.Background(), evt); err == nil {
		t.Fatalf("ожидали ошибку от SendEvent, но получили nil")
	}
}

func TestProducer_PlaceOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := mocks.NewMockWriterInterface(ctrl)
	p := &kafka.Producer{
		Writer: writer,
		Logger: zap.NewNop().Sugar(),
	}

	order := shopping_cart.Order{
		ID:      "order-1",
		CartKey: "shopEaseCart:user1",
		Lines: []shopping_cart.CartLine{
			{ID: "sku1", Name: "Shirt", Price: decimal.RequireFromString("499"), Quantity: 2},
		},
		TotalCount: 2,
		Total:      decimal.RequireFromString("998"),
		PlacedAt:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafkago.Message) error {
			assert.Len(t, msgs, 1)

			var evt kafka.Event
			assert.NoError(t, json.Unmarshal(msgs[0].Value, &evt))
			assert.Equal(t, kafka.Checkout, evt.Type)
			assert.Equal(t, "order-1", evt.OrderID)
			assert.Equal(t, "998.00", evt.Total)
			assert.Equal(t, []kafka.Item{{ID: "sku1", Name: "Shirt", Price: "499.00", Quantity: 2}}, evt.Items)
			return nil
		},
	)

	assert.NoError(t, p.PlaceOrder(context.Background(), order))
}

func TestProducer_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := mocks.NewMockWriterInterface(ctrl)
	writer.EXPECT().Close().Return(nil)

	p := &kafka.Producer{Writer: writer, Logger: zap.NewNop().Sugar()}
	assert.NoError(t, p.Close())
}
