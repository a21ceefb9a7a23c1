package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one menu item in a cart. Name and price are copied from the
// catalog when the item is first added and are never refreshed afterwards.
type CartLine struct {
	ItemID    string          `json:"meal_id"`
	Name      string          `json:"meal_name"`
	UnitPrice decimal.Decimal `json:"meal_price"`
	Quantity  int             `json:"quantity"`
}

// Total returns the unit price multiplied by the quantity
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a student's basket. A cart holds at most one line per item id.
type Cart struct {
	StudentID      string
	Lines          map[string]CartLine
	PickupTime     string
	PickupLocation string
	CreatedAt      time.Time
}

// NewCart creates an empty cart for a student
func NewCart(studentID string, now time.Time) *Cart {
	return &Cart{
		StudentID: studentID,
		Lines:     make(map[string]CartLine),
		CreatedAt: now,
	}
}

// AddItem merges quantity into an existing line or starts a new one
func (c *Cart) AddItem(itemID, name string, price decimal.Decimal, quantity int) {
	if line, ok := c.Lines[itemID]; ok {
		line.Quantity += quantity
		c.Lines[itemID] = line
		return
	}
	c.Lines[itemID] = CartLine{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: price,
		Quantity:  quantity,
	}
}

// RemoveItem deletes the line for itemID, if any
func (c *Cart) RemoveItem(itemID string) {
	delete(c.Lines, itemID)
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	line, ok := c.Lines[itemID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}
	line.Quantity = quantity
	c.Lines[itemID] = line
}

// Clear removes every line and resets the pickup selections
func (c *Cart) Clear() {
	c.Lines = make(map[string]CartLine)
	c.PickupTime = ""
	c.PickupLocation = ""
}

// TotalPrice sums the line totals
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Total())
	}
	return total
}

// TotalItems sums the line quantities
func (c *Cart) TotalItems() int {
	n := 0
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// SortedLines returns the lines ordered by item id.
func (c *Cart) SortedLines() []CartLine {
	lines := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines
}

// Clone returns a deep copy that shares nothing with c.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Lines = make(map[string]CartLine, len(c.Lines))
	for id, line := range c.Lines {
		out.Lines[id] = line
	}
	return &out
}
