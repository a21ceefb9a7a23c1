package ordering

import (
	"context"
	"fmt"

	"quickbite/internal/apperr"
	"quickbite/internal/models"

	"go.uber.org/zap"
)

// Advance sets an order's preparation status. The status must be one of
// received, preparing, ready or delivered. Transitions are not checked against
// the kitchen order, so an administrator can move an order backwards to fix a
// mistake. Whether backward moves should be refused is still undecided.
//
// The first move into ready stamps the actual ready time and the first move
// into delivered stamps the delivered time; repeating either keeps the
// original stamp.
func (s *Service) Advance(ctx context.Context, orderID, status, changedBy string) (*models.Order, error) {
	to, err := models.ParsePrepStatus(status)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	o, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	now := s.now()
	from := o.SetPrepStatus(to, now)
	snapshot := o.Clone()
	count := s.slotCountLocked(o.PickupTime)
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("changed_by", changedBy),
	)
	s.notify(ctx, Event{
		Seq:       seq,
		Type:      EventStatusChanged,
		At:        now,
		Order:     snapshot,
		From:      from,
		To:        to,
		ChangedBy: changedBy,
		Slot:      snapshot.PickupTime,
		SlotCount: count,
	})
	return snapshot.Clone(), nil
}

// ProgressPercent reports how far along an order is: 25, 50, 75 or 100.
func (s *Service) ProgressPercent(orderID string) (int, error) {
	o, err := s.Get(orderID)
	if err != nil {
		return 0, err
	}
	return o.ProgressPercent(), nil
}
