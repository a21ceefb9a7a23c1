package ordering

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"quickbite/internal/models"
)

const (
	slotA = "11:30 AM - 12:00 PM"
	slotB = "12:00 PM - 12:30 PM"
	locA  = "Main Cafeteria"
	locB  = "Food Court"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Observe(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return New(opts...), clock
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// placeCartOrder fills the student's cart with items units of one meal and
// places it.
func placeCartOrder(t *testing.T, s *Service, studentID string, items int, slot, location string) *models.Order {
	t.Helper()
	s.AddItem(studentID, "1", "Veggie Wrap", price("6.50"), items)
	o, err := s.PlaceFromCart(context.Background(), PlaceRequest{
		StudentID:      studentID,
		StudentName:    "Student " + studentID,
		PickupTime:     slot,
		PickupLocation: location,
	})
	require.NoError(t, err)
	return o
}
