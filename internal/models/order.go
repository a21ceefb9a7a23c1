package models

import (
	"fmt"
	"time"

	"quickbite/internal/apperr"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle status of an order. Every placed order is
// confirmed; there is no cancellation path.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// PrepStatus represents the kitchen progress of an order
type PrepStatus string

const (
	PrepStatusReceived  PrepStatus = "received"
	PrepStatusPreparing PrepStatus = "preparing"
	PrepStatusReady     PrepStatus = "ready"
	PrepStatusDelivered PrepStatus = "delivered"
)

var progressByStatus = map[PrepStatus]int{
	PrepStatusReceived:  25,
	PrepStatusPreparing: 50,
	PrepStatusReady:     75,
	PrepStatusDelivered: 100,
}

// ParsePrepStatus converts a status name into a PrepStatus
func ParsePrepStatus(s string) (PrepStatus, error) {
	status := PrepStatus(s)
	if _, ok := progressByStatus[status]; !ok {
		return "", fmt.Errorf("%w: invalid status %q", apperr.ErrValidation, s)
	}
	return status, nil
}

// ProgressPercent maps a status to the percentage shown on the tracking page.
// Unknown statuses map to 0.
func (s PrepStatus) ProgressPercent() int {
	return progressByStatus[s]
}

// InQueue reports whether an order in this status still holds a place in the
// kitchen queue of its slot.
func (s PrepStatus) InQueue() bool {
	return s == PrepStatusReceived || s == PrepStatusPreparing
}

// Order represents a placed meal order
type Order struct {
	ID               string          `json:"order_id"`
	StudentID        string          `json:"student_id"`
	StudentName      string          `json:"student_name"`
	Items            []CartLine      `json:"items"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	PickupTime       string          `json:"pickup_time"`
	PickupLocation   string          `json:"pickup_location"`
	CreatedAt        time.Time       `json:"order_time"`
	Status           OrderStatus     `json:"status"`
	PrepStatus       PrepStatus      `json:"preparation_status"`
	EstimatedReadyAt *time.Time      `json:"estimated_ready_time,omitempty"`
	ActualReadyAt    *time.Time      `json:"actual_ready_time,omitempty"`
	DeliveredAt      *time.Time      `json:"delivered_time,omitempty"`
}

// TotalItems sums the quantities of the order lines
func (o *Order) TotalItems() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// ProgressPercent returns the tracking progress of the order
func (o *Order) ProgressPercent() int {
	return o.PrepStatus.ProgressPercent()
}

// SetPrepStatus moves the order to status and stamps the first arrival in
// ready and delivered. Any status may follow any other so an administrator can
// correct a mistaken update, including moving backwards. The previous status
// is returned.
func (o *Order) SetPrepStatus(status PrepStatus, now time.Time) PrepStatus {
	prev := o.PrepStatus
	o.PrepStatus = status
	switch status {
	case PrepStatusReady:
		if o.ActualReadyAt == nil {
			t := now
			o.ActualReadyAt = &t
		}
	case PrepStatusDelivered:
		if o.DeliveredAt == nil {
			t := now
			o.DeliveredAt = &t
		}
	}
	return prev
}

// Clone returns a deep copy that shares nothing with o.
func (o *Order) Clone() *Order {
	out := *o
	out.Items = make([]CartLine, len(o.Items))
	copy(out.Items, o.Items)
	out.EstimatedReadyAt = cloneTime(o.EstimatedReadyAt)
	out.ActualReadyAt = cloneTime(o.ActualReadyAt)
	out.DeliveredAt = cloneTime(o.DeliveredAt)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
