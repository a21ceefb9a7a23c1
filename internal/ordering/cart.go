package ordering

import (
	"quickbite/internal/models"

	"github.com/shopspring/decimal"
)

// cartLocked returns the live cart for studentID, creating it on first use.
func (s *Service) cartLocked(studentID string) *models.Cart {
	cart, ok := s.carts[studentID]
	if !ok {
		cart = models.NewCart(studentID, s.now())
		s.carts[studentID] = cart
	}
	return cart
}

// GetOrCreate returns a copy of the student's cart, creating an empty one on
// first access.
func (s *Service) GetOrCreate(studentID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(studentID).Clone()
}

// AddItem adds quantity units of an item to the student's cart. The name and
// price are stored as given. quantity must be positive; callers validate it.
func (s *Service) AddItem(studentID, itemID, name string, price decimal.Decimal, quantity int) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(studentID)
	cart.AddItem(itemID, name, price, quantity)
	return cart.Clone()
}

// RemoveItem drops an item from the student's cart.
func (s *Service) RemoveItem(studentID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[studentID]; ok {
		cart.RemoveItem(itemID)
	}
}

// UpdateQuantity sets the quantity of an item already in the cart. A quantity
// of zero or less removes it.
func (s *Service) UpdateQuantity(studentID, itemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[studentID]; ok {
		cart.UpdateQuantity(itemID, quantity)
	}
}

// Clear empties the student's cart and resets the pickup selections.
func (s *Service) Clear(studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[studentID]; ok {
		cart.Clear()
	}
}

// SetPickup stores the student's pickup slot and location on the cart.
func (s *Service) SetPickup(studentID, slot, location string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(studentID)
	cart.PickupTime = slot
	cart.PickupLocation = location
	return cart.Clone()
}
