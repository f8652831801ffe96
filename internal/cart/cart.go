package cart

import (
	"math"
	"time"
)

// VATRate is the fixed Nigerian VAT applied to every order.
const VATRate = 0.075

type Line struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type Cart struct {
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Add merges an item into the cart. A line with the same product id gets
// its quantity bumped by one; name, price and image stay as they were on
// the first add. Unknown ids append a fresh line with quantity 1.
func (c *Cart) Add(item Line) {
	for i := range c.Lines {
		if c.Lines[i].ID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Lines = append(c.Lines, item)
}

// Remove deletes the line with the given id. Absent ids are a no-op.
func (c *Cart) Remove(id string) {
	for i, line := range c.Lines {
		if line.ID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity, clamped to a floor of 1.
// Decrementing never removes a line; Remove is the only way out.
func (c *Cart) SetQuantity(id string, qty int) {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines[i].Quantity = max(1, qty)
			return
		}
	}
}

// Clear empties the cart. Called only after a confirmed payment.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Units is the total item count across all lines.
func (c *Cart) Units() int {
	units := 0
	for _, line := range c.Lines {
		units += line.Quantity
	}
	return units
}

func (c *Cart) Subtotal() float64 {
	sum := 0.0
	for _, line := range c.Lines {
		sum += line.UnitPrice * float64(line.Quantity)
	}
	return sum
}

func (c *Cart) VAT() float64 {
	return c.Subtotal() * VATRate
}

func (c *Cart) Total() float64 {
	return c.Subtotal() + c.VAT()
}

// Kobo converts a naira amount to the gateway's minor unit.
func Kobo(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
