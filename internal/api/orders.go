package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"quickbite/internal/apperr"
	"quickbite/internal/models"
	"quickbite/internal/ordering"

	"github.com/gin-gonic/gin"
)

type singleOrderRequest struct {
	MealID         models.ItemID `json:"meal_id"`
	PickupTime     string        `json:"pickup_time"`
	PickupLocation string        `json:"pickup_location"`
}

// PlaceCartOrder turns the caller's cart into an order. Pickup selections in
// the body win over the ones stored on the cart; the body may be empty.
func (a *API) PlaceCartOrder(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	var req pickupRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		a.respondError(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}

	cart := a.orders.GetOrCreate(user.StudentID)
	if req.PickupTime == "" {
		req.PickupTime = cart.PickupTime
	}
	if req.PickupLocation == "" {
		req.PickupLocation = cart.PickupLocation
	}
	if err := validatePickup(req.PickupTime, req.PickupLocation); err != nil {
		a.respondError(c, err)
		return
	}

	order, err := a.orders.PlaceFromCart(c.Request.Context(), ordering.PlaceRequest{
		StudentID:      user.StudentID,
		StudentName:    user.Name,
		PickupTime:     req.PickupTime,
		PickupLocation: req.PickupLocation,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newOrderView(order))
}

// PlaceSingleOrder orders one unit of a meal without touching the cart.
func (a *API) PlaceSingleOrder(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	var req singleOrderRequest
	if err := bind(c, &req); err != nil {
		a.respondError(c, err)
		return
	}
	if req.MealID == "" {
		a.respondError(c, fmt.Errorf("%w: meal id required", apperr.ErrValidation))
		return
	}
	if err := validatePickup(req.PickupTime, req.PickupLocation); err != nil {
		a.respondError(c, err)
		return
	}
	meal, err := a.catalog.Lookup(string(req.MealID))
	if err != nil {
		a.respondError(c, err)
		return
	}

	order, err := a.orders.PlaceSingleItem(c.Request.Context(), ordering.SingleItemRequest{
		StudentID:      user.StudentID,
		StudentName:    user.Name,
		ItemID:         meal.ID,
		ItemName:       meal.Name,
		Price:          meal.Price,
		PickupTime:     req.PickupTime,
		PickupLocation: req.PickupLocation,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newOrderView(order))
}

// ListOrders lists the caller's orders, newest first.
func (a *API) ListOrders(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": newOrderViews(a.orders.OrdersForStudent(user.StudentID))})
}

// TrackOrder shows one of the caller's orders.
func (a *API) TrackOrder(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	order, err := a.orders.TrackOrder(user.StudentID, c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderView(order))
}
