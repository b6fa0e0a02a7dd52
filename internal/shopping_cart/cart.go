package shopping_cart

import "github.com/shopspring/decimal"

// Cart позиции корзины по id товара. Порядок вставки сохраняется для отображения.
type Cart struct {
	lines map[string]*CartLine
	order []string
}

func NewCart() *Cart {
	return &Cart{
		lines: make(map[string]*CartLine),
	}
}

func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) Get(id string) (CartLine, bool) {
	line, ok := c.lines[id]
	if !ok {
		return CartLine{}, false
	}

	return *line, true
}

// Lines возвращает копии позиций в порядке добавления
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}

	return lines
}

// TotalCount сумма количеств по всем позициям
func (c *Cart) TotalCount() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}

	return total
}

// TotalPrice сумма price * quantity по всем позициям
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return total
}

// add увеличивает количество существующей позиции, иначе добавляет новую с quantity = 1.
// Атрибуты уже лежащей в корзине позиции не перезаписываются.
func (c *Cart) add(line CartLine) {
	if existing, ok := c.lines[line.ID]; ok {
		existing.Quantity++
		return
	}

	line.Quantity = 1
	c.put(line)
}

// put кладет позицию как есть, повторный id заменяет значение на прежнем месте
func (c *Cart) put(line CartLine) {
	if _, ok := c.lines[line.ID]; !ok {
		c.order = append(c.order, line.ID)
	}
	c.lines[line.ID] = &line
}

func (c *Cart) increment(id string) bool {
	line, ok := c.lines[id]
	if !ok {
		return false
	}

	line.Quantity++
	return true
}

// decrement при quantity == 1 удаляет позицию целиком
func (c *Cart) decrement(id string) bool {
	line, ok := c.lines[id]
	if !ok {
		return false
	}

	if line.Quantity > 1 {
		line.Quantity--
		return true
	}

	return c.remove(id)
}

func (c *Cart) remove(id string) bool {
	if _, ok := c.lines[id]; !ok {
		return false
	}

	delete(c.lines, id)
	for i, orderedID := range c.order {
		if orderedID == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	return true
}

func (c *Cart) clone() *Cart {
	cp := NewCart()
	for _, id := range c.order {
		cp.put(*c.lines[id])
	}

	return cp
}
