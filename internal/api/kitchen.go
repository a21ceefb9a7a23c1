package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status"`
}

// Kitchen handlers, administrators only.

func (a *API) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, a.orders.Dashboard())
}

func (a *API) UpdateOrderStatus(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		a.respondError(c, err)
		return
	}

	order, err := a.orders.Advance(c.Request.Context(), c.Param("id"), req.Status, user.StudentID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Order status updated to " + string(order.PrepStatus),
		"order":            newOrderView(order),
		"progress_percent": order.ProgressPercent(),
	})
}

func (a *API) GetOrderHistory(c *gin.Context) {
	orderID := c.Param("id")
	if _, err := a.orders.Get(orderID); err != nil {
		a.respondError(c, err)
		return
	}
	record, err := a.history.Order(orderID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	changes, err := a.history.History(orderID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "record": record, "changes": changes})
}
