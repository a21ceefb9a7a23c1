package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickbite/internal/ordering"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slot = "12:30 PM - 1:00 PM"

func placeTea(t *testing.T, svc *ordering.Service, student string) error {
	t.Helper()
	_, err := svc.PlaceSingleItem(context.Background(), ordering.SingleItemRequest{
		StudentID:      student,
		ItemName:       "Masala Tea",
		Price:          decimal.RequireFromString("1.50"),
		PickupTime:     slot,
		PickupLocation: "Food Court",
	})
	return err
}

func scrape(t *testing.T, m *Monitor) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMonitorCountsPlacementsAndRejections(t *testing.T) {
	m := NewMonitor(2)
	svc := ordering.New(ordering.WithCapacity(2), ordering.WithObserver(m))

	require.NoError(t, placeTea(t, svc, "s1"))
	require.NoError(t, placeTea(t, svc, "s2"))
	require.Error(t, placeTea(t, svc, "s3"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced.WithLabelValues(slot)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.placementRejected.WithLabelValues(slot, "capacity")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotOccupancy.WithLabelValues(slot)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotCapacity))
	assert.Contains(t, scrape(t, m), "quickbite_estimated_prep_minutes_count 2")
}

func TestMonitorStatusTransitions(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(10)
	svc := ordering.New(
		ordering.WithClock(func() time.Time { return now }),
		ordering.WithObserver(m),
	)
	ctx := context.Background()
	require.NoError(t, placeTea(t, svc, "s1"))

	now = now.Add(time.Minute)
	_, err := svc.Advance(ctx, "ORD0001", "preparing", "admin")
	require.NoError(t, err)
	now = now.Add(time.Minute)
	_, err = svc.Advance(ctx, "ORD0001", "ready", "admin")
	require.NoError(t, err)
	now = now.Add(time.Minute)
	_, err = svc.Advance(ctx, "ORD0001", "ready", "admin")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("preparing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("ready")))
	assert.Contains(t, scrape(t, m), "quickbite_ready_delay_minutes_count 1")
}

func TestMonitorHandler(t *testing.T) {
	m := NewMonitor(125)
	svc := ordering.New(ordering.WithObserver(m))
	require.NoError(t, placeTea(t, svc, "s1"))

	body := scrape(t, m)
	assert.Contains(t, body, `quickbite_orders_placed_total{slot="12:30 PM - 1:00 PM"} 1`)
	assert.Contains(t, body, "quickbite_slot_capacity 125")
	assert.Contains(t, body, "go_goroutines")
}
