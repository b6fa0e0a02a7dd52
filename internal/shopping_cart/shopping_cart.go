package shopping_cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultKey ключ, под которым хранится снимок корзины
const DefaultKey = "shopEaseCart"

// CheckoutMessage подтверждение оформленного заказа
const CheckoutMessage = "Thank you for your purchase! Your order has been placed."

// CartLine одна позиция корзины
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// Order заказ, который уходит внешней системе при оформлении
type Order struct {
	ID         string
	CartKey    string
	Lines      []CartLine
	TotalCount int
	Total      decimal.Decimal
	PlacedAt   time.Time
}

// OrderSink внешний получатель заказов
//
//go:generate mockgen -source=shopping_cart.go -destination=../mocks/mock_order_sink.go -package=mocks
type OrderSink interface {
	// PlaceOrder передает заказ на обработку
	PlaceOrder(ctx context.Context, order Order) error
}

// Surface видимая часть корзины: счетчик на иконке и модальное окно
type Surface interface {
	// UpdateCount обновляет счетчик товаров на иконке корзины
	UpdateCount(count int)
	// RenderModal перерисовывает содержимое модального окна
	RenderModal(view View)
	ShowModal()
	HideModal()
}
