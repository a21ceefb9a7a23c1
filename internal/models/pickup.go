package models

// PickupLocation is a place where students collect their orders. Coordinates
// are for display only.
type PickupLocation struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description"`
}

var timeSlots = []string{
	"11:30 AM - 12:00 PM",
	"12:00 PM - 12:30 PM",
	"12:30 PM - 1:00 PM",
	"1:00 PM - 1:30 PM",
}

var pickupLocations = []PickupLocation{
	{Name: "Main Cafeteria", Lat: 28.6139, Lng: 77.2090, Description: "Main building, ground floor"},
	{Name: "Food Court", Lat: 28.6145, Lng: 77.2095, Description: "Student center, first floor"},
	{Name: "Outdoor Station", Lat: 28.6135, Lng: 77.2085, Description: "Near sports complex"},
}

// TimeSlots returns the pickup windows in serving order.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// PickupLocations returns the pickup points in display order.
func PickupLocations() []PickupLocation {
	out := make([]PickupLocation, len(pickupLocations))
	copy(out, pickupLocations)
	return out
}

// IsTimeSlot reports whether slot is one of the pickup windows.
func IsTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// IsPickupLocation reports whether name is one of the pickup points.
func IsPickupLocation(name string) bool {
	for _, l := range pickupLocations {
		if l.Name == name {
			return true
		}
	}
	return false
}
