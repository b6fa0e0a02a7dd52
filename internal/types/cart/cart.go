package cart

import "github.com/shopspring/decimal"

// AddItemForm - форма кнопки "Add to Cart", атрибуты товара приходят вместе с кликом
type AddItemForm struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// CheckoutResult - ответ на оформление заказа
type CheckoutResult struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
	Total   string `json:"total"`
}
