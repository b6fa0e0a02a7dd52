package kafka

import "time"

type EventType string

const (
	AddToCart EventType = "addToCart"
	Checkout  EventType = "checkout"
)

// Item позиция заказа в событии
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

type Event struct {
	CartKey   string    `json:"cart_key"`
	Type      EventType `json:"type"`
	OrderID   string    `json:"order_id,omitempty"`
	Items     []Item    `json:"items,omitempty"`
	Total     string    `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
