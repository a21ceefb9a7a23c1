// Package ordering holds the in-memory state of the pre-ordering service:
// student carts, the order ledger and its id counter, per-slot capacity, the
// ready-time estimator and the preparation status machine.
//
// A single Service owns all of that state. One mutex guards it, so a capacity
// check, id assignment and ledger insert happen as one step and concurrent
// placements can neither overfill a slot nor share an id.
package ordering

import (
	"context"
	"sync"
	"time"

	"quickbite/internal/models"

	"go.uber.org/zap"
)

// DefaultSlotCapacity is the number of orders a pickup slot accepts.
const DefaultSlotCapacity = 125

// Clock returns the current time.
type Clock func() time.Time

// Service is the ordering state of one process.
type Service struct {
	mu       sync.Mutex
	carts    map[string]*models.Cart
	orders   map[string]*models.Order
	nextID   int
	capacity int

	estimator Estimator
	now       Clock
	observers []Observer
	logger    *zap.Logger

	// seq is the number of the last event handed out, guarded by mu.
	seq uint64
	// delivered is the number of the last event passed to the observers,
	// guarded by deliverMu.
	deliverMu sync.Mutex
	deliverOK *sync.Cond
	delivered uint64
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Service) { s.now = c }
}

// WithCapacity sets the per-slot order limit.
func WithCapacity(n int) Option {
	return func(s *Service) { s.capacity = n }
}

// WithEstimator replaces the default preparation weights.
func WithEstimator(e Estimator) Option {
	return func(s *Service) { s.estimator = e }
}

// WithObserver registers observers that are told about every state change.
func WithObserver(o ...Observer) Option {
	return func(s *Service) { s.observers = append(s.observers, o...) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates an empty Service. The first order placed gets id ORD0001.
func New(opts ...Option) *Service {
	s := &Service{
		carts:     make(map[string]*models.Cart),
		orders:    make(map[string]*models.Order),
		nextID:    1,
		capacity:  DefaultSlotCapacity,
		estimator: DefaultEstimator,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	s.deliverOK = sync.NewCond(&s.deliverMu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the per-slot order limit.
func (s *Service) Capacity() int {
	return s.capacity
}

// nextSeqLocked numbers the event about to be published. Every number handed
// out must reach notify, or later events are never delivered.
func (s *Service) nextSeqLocked() uint64 {
	s.seq++
	return s.seq
}

// notify runs outside the state lock. Events reach the observers one at a
// time in the order their sequence numbers were taken.
func (s *Service) notify(ctx context.Context, e Event) {
	s.deliverMu.Lock()
	for s.delivered+1 != e.Seq {
		s.deliverOK.Wait()
	}
	defer func() {
		s.delivered = e.Seq
		s.deliverOK.Broadcast()
		s.deliverMu.Unlock()
	}()
	for _, o := range s.observers {
		o.Observe(ctx, e)
	}
}
