package ordering

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"quickbite/internal/apperr"
	"quickbite/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SingleItemID is the line id of orders placed through the direct purchase
// path when the caller does not name a menu item.
const SingleItemID = "single"

// PlaceRequest asks for the student's cart to be turned into an order.
type PlaceRequest struct {
	StudentID      string
	StudentName    string
	PickupTime     string
	PickupLocation string
}

// SingleItemRequest asks for a one-item order that bypasses the cart.
type SingleItemRequest struct {
	StudentID      string
	StudentName    string
	ItemID         string
	ItemName       string
	Price          decimal.Decimal
	PickupTime     string
	PickupLocation string
}

// FormatOrderID renders the n-th order id.
func FormatOrderID(n int) string {
	return fmt.Sprintf("ORD%04d", n)
}

// orderNumber is the inverse of FormatOrderID. Ids past ORD9999 grow a digit,
// so ids only sort correctly by their number.
func orderNumber(id string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(id, "ORD"))
	return n
}

// PlaceFromCart converts the student's cart into an order and empties the
// cart. It fails with apperr.ErrEmptyCart when there is nothing to order and
// apperr.ErrCapacity when the slot is full; neither failure changes any state.
func (s *Service) PlaceFromCart(ctx context.Context, req PlaceRequest) (*models.Order, error) {
	s.mu.Lock()
	cart, ok := s.carts[req.StudentID]
	if !ok || cart.IsEmpty() {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: student %s", apperr.ErrEmptyCart, req.StudentID)
	}
	if count, err := s.checkCapacityLocked(req.PickupTime); err != nil {
		seq := s.nextSeqLocked()
		s.mu.Unlock()
		s.rejected(ctx, seq, req.PickupTime, count, err)
		return nil, err
	}

	lines := cart.SortedLines()
	order := s.insertLocked(req.StudentID, req.StudentName, lines, cart.TotalPrice(), req.PickupTime, req.PickupLocation)
	cart.Clear()
	snapshot := order.Clone()
	count := s.slotCountLocked(req.PickupTime)
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.placed(ctx, seq, snapshot, count)
	return snapshot.Clone(), nil
}

// PlaceSingleItem records a one-line order for a single unit of an item. The
// student's cart is left alone.
func (s *Service) PlaceSingleItem(ctx context.Context, req SingleItemRequest) (*models.Order, error) {
	itemID := req.ItemID
	if itemID == "" {
		itemID = SingleItemID
	}
	lines := []models.CartLine{{
		ItemID:    itemID,
		Name:      req.ItemName,
		UnitPrice: req.Price,
		Quantity:  1,
	}}

	s.mu.Lock()
	if count, err := s.checkCapacityLocked(req.PickupTime); err != nil {
		seq := s.nextSeqLocked()
		s.mu.Unlock()
		s.rejected(ctx, seq, req.PickupTime, count, err)
		return nil, err
	}
	order := s.insertLocked(req.StudentID, req.StudentName, lines, req.Price, req.PickupTime, req.PickupLocation)
	snapshot := order.Clone()
	count := s.slotCountLocked(req.PickupTime)
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.placed(ctx, seq, snapshot, count)
	return snapshot.Clone(), nil
}

// checkCapacityLocked fails once the slot holds capacity orders. It returns
// the current count of the slot either way.
func (s *Service) checkCapacityLocked(slot string) (int, error) {
	count := s.slotCountLocked(slot)
	if count >= s.capacity {
		return count, fmt.Errorf("%w: %s has %d of %d orders", apperr.ErrCapacity, slot, count, s.capacity)
	}
	return count, nil
}

// insertLocked builds the next order, estimates it and appends it to the
// ledger.
func (s *Service) insertLocked(studentID, studentName string, lines []models.CartLine, total decimal.Decimal, slot, location string) *models.Order {
	order := &models.Order{
		ID:             FormatOrderID(s.nextID),
		StudentID:      studentID,
		StudentName:    studentName,
		Items:          lines,
		TotalPrice:     total,
		PickupTime:     slot,
		PickupLocation: location,
		CreatedAt:      s.now(),
		Status:         models.OrderStatusConfirmed,
		PrepStatus:     models.PrepStatusReceived,
	}
	s.estimateLocked(order)
	s.orders[order.ID] = order
	s.nextID++
	return order
}

func (s *Service) placed(ctx context.Context, seq uint64, o *models.Order, slotCount int) {
	s.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("student_id", o.StudentID),
		zap.String("pickup_time", o.PickupTime),
		zap.Int("items", o.TotalItems()),
		zap.Time("estimated_ready", *o.EstimatedReadyAt),
	)
	s.notify(ctx, Event{
		Seq:       seq,
		Type:      EventOrderPlaced,
		At:        o.CreatedAt,
		Order:     o,
		Slot:      o.PickupTime,
		SlotCount: slotCount,
	})
}

func (s *Service) rejected(ctx context.Context, seq uint64, slot string, slotCount int, err error) {
	s.logger.Warn("order rejected", zap.String("pickup_time", slot), zap.Error(err))
	s.notify(ctx, Event{
		Seq:       seq,
		Type:      EventPlacementRejected,
		At:        s.now(),
		Slot:      slot,
		Reason:    apperr.Kind(err),
		SlotCount: slotCount,
	})
}

// Get returns a copy of the order with the given id.
func (s *Service) Get(orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return o.Clone(), nil
}

// TrackOrder returns the order only if it belongs to studentID. Orders of
// other students are reported as missing.
func (s *Service) TrackOrder(studentID, orderID string) (*models.Order, error) {
	o, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if o.StudentID != studentID {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return o, nil
}

// OrdersForStudent lists the student's orders, newest first.
func (s *Service) OrdersForStudent(studentID string) []*models.Order {
	s.mu.Lock()
	out := make([]*models.Order, 0)
	for _, o := range s.orders {
		if o.StudentID == studentID {
			out = append(out, o.Clone())
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return orderNumber(out[i].ID) > orderNumber(out[j].ID)
	})
	return out
}

// Total returns the number of orders in the ledger.
func (s *Service) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
