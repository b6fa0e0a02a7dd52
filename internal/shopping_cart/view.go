package shopping_cart

import (
	"github.com/shopspring/decimal"

	"shopease-main/internal/price"
)

// EmptyPlaceholder текст пустой корзины
const EmptyPlaceholder = "Your cart is empty."

type Action string

const (
	ActionDecrement Action = "decrement"
	ActionIncrement Action = "increment"
	ActionRemove    Action = "remove"
)

// Control кнопка строки корзины, привязанная к id позиции
type Control struct {
	Action Action `json:"action"`
	ItemID string `json:"item_id"`
	Label  string `json:"label"`
}

// Row строка модального окна корзины
type Row struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	ImageAlt string    `json:"image_alt"`
	Price    string    `json:"price"`
	Quantity int       `json:"quantity"`
	Controls []Control `json:"controls"`
}

// View то, что должно быть показано в корзине
type View struct {
	Rows            []Row           `json:"rows"`
	Empty           bool            `json:"empty"`
	Placeholder     string          `json:"placeholder,omitempty"`
	Count           int             `json:"count"`
	Total           decimal.Decimal `json:"-"`
	TotalLabel      string          `json:"total"`
	CheckoutEnabled bool            `json:"checkout_enabled"`
}

// RenderView строит представление корзины, ничего не меняя
func RenderView(c *Cart) View {
	total := c.TotalPrice()
	view := View{
		Rows:            make([]Row, 0, c.Len()),
		Count:           c.TotalCount(),
		Total:           total,
		TotalLabel:      "Total: " + price.Format(total),
		CheckoutEnabled: !total.IsZero(),
	}

	if c.Len() == 0 {
		view.Empty = true
		view.Placeholder = EmptyPlaceholder
		return view
	}

	for _, line := range c.Lines() {
		view.Rows = append(view.Rows, Row{
			ID:       line.ID,
			Name:     line.Name,
			Image:    line.Image,
			ImageAlt: line.Name + " product image",
			Price:    price.Format(line.Price),
			Quantity: line.Quantity,
			Controls: []Control{
				{Action: ActionDecrement, ItemID: line.ID, Label: "Decrease quantity"},
				{Action: ActionIncrement, ItemID: line.ID, Label: "Increase quantity"},
				{Action: ActionRemove, ItemID: line.ID, Label: "Remove item"},
			},
		})
	}

	return view
}
