package api

import (
	"fmt"
	"net/http"

	"quickbite/internal/apperr"
	"quickbite/internal/models"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	MealID   models.ItemID `json:"meal_id"`
	Quantity *int          `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

type pickupRequest struct {
	PickupTime     string `json:"pickup_time"`
	PickupLocation string `json:"pickup_location"`
}

// GetCart shows the caller's cart.
func (a *API) GetCart(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(a.orders.GetOrCreate(user.StudentID)))
}

// AddCartItem adds a meal to the caller's cart. The quantity defaults to one.
func (a *API) AddCartItem(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	var req addItemRequest
	if err := bind(c, &req); err != nil {
		a.respondError(c, err)
		return
	}
	if req.MealID == "" {
		a.respondError(c, fmt.Errorf("%w: meal id required", apperr.ErrValidation))
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		a.respondError(c, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrValidation))
		return
	}

	meal, err := a.catalog.Lookup(string(req.MealID))
	if err != nil {
		a.respondError(c, err)
		return
	}

	cart := a.orders.AddItem(user.StudentID, meal.ID, meal.Name, meal.Price, quantity)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s added to cart", meal.Name),
		"cart":    newCartView(cart),
	})
}

// UpdateCartItem sets the quantity of a meal in the cart. Zero or less removes
// the meal.
func (a *API) UpdateCartItem(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	var req updateItemRequest
	if err := bind(c, &req); err != nil {
		a.respondError(c, err)
		return
	}
	if req.Quantity == nil {
		a.respondError(c, fmt.Errorf("%w: quantity required", apperr.ErrValidation))
		return
	}

	a.orders.UpdateQuantity(user.StudentID, c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, newCartView(a.orders.GetOrCreate(user.StudentID)))
}

// RemoveCartItem drops a meal from the cart.
func (a *API) RemoveCartItem(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.orders.RemoveItem(user.StudentID, c.Param("id"))
	c.JSON(http.StatusOK, newCartView(a.orders.GetOrCreate(user.StudentID)))
}

// ClearCart empties the cart and its pickup selections.
func (a *API) ClearCart(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.orders.Clear(user.StudentID)
	c.JSON(http.StatusOK, newCartView(a.orders.GetOrCreate(user.StudentID)))
}

// SetPickup stores the pickup slot and location on the cart.
func (a *API) SetPickup(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	var req pickupRequest
	if err := bind(c, &req); err != nil {
		a.respondError(c, err)
		return
	}
	if err := validatePickup(req.PickupTime, req.PickupLocation); err != nil {
		a.respondError(c, err)
		return
	}

	cart := a.orders.SetPickup(user.StudentID, req.PickupTime, req.PickupLocation)
	c.JSON(http.StatusOK, newCartView(cart))
}
