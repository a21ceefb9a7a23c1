package models

import (
	"testing"
	"time"

	"quickbite/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemMerges(t *testing.T) {
	cart := NewCart("s1", time.Now())
	price := decimal.RequireFromString("3.50")

	cart.AddItem("7", "Samosa", price, 1)
	cart.AddItem("7", "Samosa", price, 2)
	cart.AddItem("7", "Renamed", decimal.NewFromInt(99), 4)

	require.Len(t, cart.Lines, 1)
	line := cart.Lines["7"]
	assert.Equal(t, 7, line.Quantity)
	assert.Equal(t, "Samosa", line.Name)
	assert.True(t, line.UnitPrice.Equal(price))
	assert.True(t, cart.TotalPrice().Equal(decimal.RequireFromString("24.50")))
	assert.Equal(t, 7, cart.TotalItems())
}

func TestCartUpdateQuantity(t *testing.T) {
	for _, q := range []int{0, -3} {
		cart := NewCart("s1", time.Now())
		cart.AddItem("1", "Tea", decimal.NewFromInt(1), 2)
		cart.UpdateQuantity("1", q)
		assert.True(t, cart.IsEmpty(), "quantity %d should remove the line", q)
	}

	cart := NewCart("s1", time.Now())
	cart.AddItem("1", "Tea", decimal.NewFromInt(1), 2)
	cart.UpdateQuantity("1", 5)
	assert.Equal(t, 5, cart.Lines["1"].Quantity)

	cart.UpdateQuantity("missing", 3)
	assert.Len(t, cart.Lines, 1)
}

func TestCartClearResetsPickup(t *testing.T) {
	cart := NewCart("s1", time.Now())
	cart.AddItem("1", "Tea", decimal.NewFromInt(1), 1)
	cart.PickupTime = "11:30 AM - 12:00 PM"
	cart.PickupLocation = "Food Court"

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.PickupTime)
	assert.Empty(t, cart.PickupLocation)
}

func TestCartCloneIsIndependent(t *testing.T) {
	cart := NewCart("s1", time.Now())
	cart.AddItem("1", "Tea", decimal.NewFromInt(1), 1)

	clone := cart.Clone()
	cart.AddItem("1", "Tea", decimal.NewFromInt(1), 1)

	assert.Equal(t, 1, clone.Lines["1"].Quantity)
	assert.Equal(t, 2, cart.Lines["1"].Quantity)
}

func TestParsePrepStatus(t *testing.T) {
	for _, name := range []string{"received", "preparing", "ready", "delivered"} {
		status, err := ParsePrepStatus(name)
		require.NoError(t, err)
		assert.Equal(t, PrepStatus(name), status)
	}

	_, err := ParsePrepStatus("cancelled")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProgressPercent(t *testing.T) {
	want := map[PrepStatus]int{
		PrepStatusReceived:  25,
		PrepStatusPreparing: 50,
		PrepStatusReady:     75,
		PrepStatusDelivered: 100,
		PrepStatus("bogus"): 0,
	}
	for status, pct := range want {
		assert.Equal(t, pct, status.ProgressPercent())
		assert.Equal(t, pct, status.ProgressPercent())
	}
}

func TestSetPrepStatusStampsOnce(t *testing.T) {
	o := &Order{PrepStatus: PrepStatusReceived}
	t1 := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(10 * time.Minute)

	prev := o.SetPrepStatus(PrepStatusReady, t1)
	assert.Equal(t, PrepStatusReceived, prev)
	require.NotNil(t, o.ActualReadyAt)

	o.SetPrepStatus(PrepStatusPreparing, t2)
	o.SetPrepStatus(PrepStatusReady, t2)
	assert.Equal(t, t1, *o.ActualReadyAt)

	o.SetPrepStatus(PrepStatusDelivered, t1)
	o.SetPrepStatus(PrepStatusDelivered, t2)
	require.NotNil(t, o.DeliveredAt)
	assert.Equal(t, t1, *o.DeliveredAt)
	assert.Equal(t, 100, o.ProgressPercent())
}

func TestOrderCloneIsIndependent(t *testing.T) {
	ready := time.Now()
	o := &Order{
		ID:            "ORD0001",
		Items:         []CartLine{{ItemID: "1", Quantity: 2}},
		ActualReadyAt: &ready,
	}

	clone := o.Clone()
	o.Items[0].Quantity = 9
	*o.ActualReadyAt = ready.Add(time.Hour)

	assert.Equal(t, 2, clone.Items[0].Quantity)
	assert.Equal(t, ready, *clone.ActualReadyAt)
	assert.Equal(t, 2, clone.TotalItems())
}
