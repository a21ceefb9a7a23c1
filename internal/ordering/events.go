package ordering

import (
	"context"
	"time"

	"quickbite/internal/models"
)

// EventType names a ledger change.
type EventType string

const (
	EventOrderPlaced       EventType = "order_placed"
	EventPlacementRejected EventType = "placement_rejected"
	EventStatusChanged     EventType = "status_changed"
)

// Event describes one change to the ordering state. Order is a private copy
// and may be kept by the observer.
type Event struct {
	Seq       uint64            `json:"seq"`
	Type      EventType         `json:"type"`
	At        time.Time         `json:"at"`
	Order     *models.Order     `json:"order,omitempty"`
	From      models.PrepStatus `json:"from,omitempty"`
	To        models.PrepStatus `json:"to,omitempty"`
	ChangedBy string            `json:"changed_by,omitempty"`
	Slot      string            `json:"slot,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	SlotCount int               `json:"slot_count"`
}

// Observer receives events after the state lock has been released, one at a
// time and in ledger order. Observe must not call back into the Service that
// produced the event, and a slow Observe holds back every later event.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, e Event)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }
