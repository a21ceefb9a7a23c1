package api

import (
	"quickbite/internal/models"

	"github.com/shopspring/decimal"
)

type cartView struct {
	StudentID      string            `json:"student_id"`
	Items          []models.CartLine `json:"items"`
	TotalPrice     decimal.Decimal   `json:"total_price"`
	TotalItems     int               `json:"total_items"`
	PickupTime     string            `json:"pickup_time"`
	PickupLocation string            `json:"pickup_location"`
}

func newCartView(c *models.Cart) cartView {
	return cartView{
		StudentID:      c.StudentID,
		Items:          c.SortedLines(),
		TotalPrice:     c.TotalPrice(),
		TotalItems:     c.TotalItems(),
		PickupTime:     c.PickupTime,
		PickupLocation: c.PickupLocation,
	}
}

type orderView struct {
	*models.Order
	TotalItems      int `json:"total_items"`
	ProgressPercent int `json:"progress_percent"`
}

func newOrderView(o *models.Order) orderView {
	return orderView{
		Order:           o,
		TotalItems:      o.TotalItems(),
		ProgressPercent: o.ProgressPercent(),
	}
}

func newOrderViews(orders []*models.Order) []orderView {
	out := make([]orderView, len(orders))
	for i, o := range orders {
		out[i] = newOrderView(o)
	}
	return out
}
