package ordering

import (
	"sort"

	"quickbite/internal/models"
)

// Dashboard is the administrator's view of demand.
type Dashboard struct {
	Summary     map[string]map[string][]*models.Order `json:"orders_summary"`
	Counts      map[string]int                         `json:"order_counts"`
	MaxCapacity int                                    `json:"max_capacity"`
	TotalOrders int                                    `json:"total_orders"`
}

// slotCountLocked counts the orders that occupy slot. Orders hold their slot
// for as long as the process lives.
func (s *Service) slotCountLocked(slot string) int {
	n := 0
	for _, o := range s.orders {
		if o.PickupTime == slot {
			n++
		}
	}
	return n
}

func (s *Service) countsLocked() map[string]int {
	counts := make(map[string]int)
	for _, slot := range models.TimeSlots() {
		counts[slot] = 0
	}
	for _, o := range s.orders {
		if _, ok := counts[o.PickupTime]; ok {
			counts[o.PickupTime]++
		}
	}
	return counts
}

// CountsBySlot returns the number of orders held by each pickup slot.
func (s *Service) CountsBySlot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countsLocked()
}

func (s *Service) summaryLocked() map[string]map[string][]*models.Order {
	summary := make(map[string]map[string][]*models.Order)
	locations := models.PickupLocations()
	for _, slot := range models.TimeSlots() {
		byLocation := make(map[string][]*models.Order, len(locations))
		for _, loc := range locations {
			byLocation[loc.Name] = []*models.Order{}
		}
		summary[slot] = byLocation
	}

	for _, o := range s.orders {
		byLocation, ok := summary[o.PickupTime]
		if !ok {
			continue
		}
		if _, ok := byLocation[o.PickupLocation]; !ok {
			continue
		}
		byLocation[o.PickupLocation] = append(byLocation[o.PickupLocation], o.Clone())
	}

	for _, byLocation := range summary {
		for _, orders := range byLocation {
			sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
		}
	}
	return summary
}

// OrdersBySlotAndLocation groups every order by pickup slot and location.
// Every known slot and location appears, possibly with no orders. Orders whose
// slot or location is not a known one are left out.
func (s *Service) OrdersBySlotAndLocation() map[string]map[string][]*models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// Dashboard builds the administrator's view from a single ledger snapshot.
func (s *Service) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Dashboard{
		Summary:     s.summaryLocked(),
		Counts:      s.countsLocked(),
		MaxCapacity: s.capacity,
		TotalOrders: len(s.orders),
	}
}
