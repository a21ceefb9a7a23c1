package api

import (
	"net/http"

	"quickbite/internal/models"

	"github.com/gin-gonic/gin"
)

// GetMenu lists the meals together with the pickup options and how full each
// slot is. ?category= narrows the meals to one category.
func (a *API) GetMenu(c *gin.Context) {
	meals := a.catalog.Items()
	if name := c.Query("category"); name != "" {
		category, err := models.ParseMenuCategory(name)
		if err != nil {
			a.respondError(c, err)
			return
		}
		meals = a.catalog.InCategory(category)
	}

	c.JSON(http.StatusOK, gin.H{
		"meals":            meals,
		"time_slots":       models.TimeSlots(),
		"pickup_locations": models.PickupLocations(),
		"order_counts":     a.orders.CountsBySlot(),
		"max_capacity":     a.orders.Capacity(),
	})
}
