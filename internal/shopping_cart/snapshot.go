package shopping_cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

var errMalformedSnapshot = errors.New("malformed cart snapshot")

// snapshotLine позиция в снимке, id хранится ключом объекта
type snapshotLine struct {
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
	Image    string      `json:"image"`
}

// encodeSnapshot пишет корзину JSON-объектом {id: {name, price, quantity, image}}
// в порядке добавления позиций
func encodeSnapshot(c *Cart) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, line := range c.Lines() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(line.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(snapshotLine{
			Name:     line.Name,
			Price:    json.Number(line.Price.String()),
			Quantity: line.Quantity,
			Image:    line.Image,
		})
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeSnapshot восстанавливает корзину, сохраняя порядок ключей.
// Позиции с нарушенными инвариантами отбрасываются, их количество возвращается в dropped.
func decodeSnapshot(data []byte) (cart *Cart, dropped int, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", errMalformedSnapshot, err)
	}

	cart = NewCart()
	if tok == nil {
		return cart, 0, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, 0, fmt.Errorf("%w: expected object, got %v", errMalformedSnapshot, tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", errMalformedSnapshot, err)
		}
		id, _ := keyTok.(string)

		var line snapshotLine
		if err := dec.Decode(&line); err != nil {
			return nil, 0, fmt.Errorf("%w: line %q: %v", errMalformedSnapshot, id, err)
		}

		price, err := decimal.NewFromString(line.Price.String())
		if id == "" || err != nil || price.IsNegative() || line.Quantity < 1 {
			dropped++
			continue
		}

		cart.put(CartLine{
			ID:       id,
			Name:     line.Name,
			Price:    price,
			Quantity: line.Quantity,
			Image:    line.Image,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", errMalformedSnapshot, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%w: trailing data", errMalformedSnapshot)
	}

	return cart, dropped, nil
}
