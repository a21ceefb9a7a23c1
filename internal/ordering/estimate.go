package ordering

import (
	"fmt"
	"time"

	"quickbite/internal/apperr"
	"quickbite/internal/models"
)

// Estimator holds the kitchen weights used to promise a ready time.
type Estimator struct {
	Base          time.Duration
	PerItem       time.Duration
	PerOrderAhead time.Duration
}

// DefaultEstimator is 5 minutes per order plus 2 per item plus 2 per order
// ahead in the same slot.
var DefaultEstimator = Estimator{
	Base:          5 * time.Minute,
	PerItem:       2 * time.Minute,
	PerOrderAhead: 2 * time.Minute,
}

// Duration returns the preparation time for an order of items units with
// ahead orders queued before it.
func (e Estimator) Duration(items, ahead int) time.Duration {
	return e.Base + time.Duration(items)*e.PerItem + time.Duration(ahead)*e.PerOrderAhead
}

// queueAheadLocked counts the orders in o's slot that were created strictly
// before o and have not reached ready yet.
func (s *Service) queueAheadLocked(o *models.Order) int {
	n := 0
	for _, other := range s.orders {
		if other.ID == o.ID || other.PickupTime != o.PickupTime {
			continue
		}
		if other.CreatedAt.Before(o.CreatedAt) && other.PrepStatus.InQueue() {
			n++
		}
	}
	return n
}

// estimateLocked computes o's ready time once. Later calls return the stored
// value even if the queue has moved since.
func (s *Service) estimateLocked(o *models.Order) time.Time {
	if o.EstimatedReadyAt != nil {
		return *o.EstimatedReadyAt
	}
	ahead := s.queueAheadLocked(o)
	ready := o.CreatedAt.Add(s.estimator.Duration(o.TotalItems(), ahead))
	o.EstimatedReadyAt = &ready
	return ready
}

// EstimateReadyTime returns the promised ready time of an order.
func (s *Service) EstimateReadyTime(orderID string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return s.estimateLocked(o), nil
}
