// Package api exposes the ordering service over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"quickbite/internal/apperr"
	"quickbite/internal/auth"
	"quickbite/internal/database"
	"quickbite/internal/logging"
	"quickbite/internal/models"
	"quickbite/internal/ordering"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// History reads the journal of an order.
type History interface {
	Order(orderID string) (*database.OrderRecord, error)
	History(orderID string) ([]database.StatusChange, error)
}

// Deps are the collaborators of the API. Feed and History are optional; their
// routes are only mounted when set.
type Deps struct {
	Orders  *ordering.Service
	Catalog *models.Catalog
	Users   *auth.Directory
	Tokens  *auth.Issuer
	Feed    gin.HandlerFunc
	History History
	Logger  *zap.Logger
}

// API represents the HTTP handlers of the service
type API struct {
	Router *gin.Engine

	orders  *ordering.Service
	catalog *models.Catalog
	users   *auth.Directory
	tokens  *auth.Issuer
	feed    gin.HandlerFunc
	history History
	logger  *zap.Logger
}

// NewAPI creates a new API instance
func NewAPI(d Deps) *API {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware(logger))

	a := &API{
		Router:  router,
		orders:  d.Orders,
		catalog: d.Catalog,
		users:   d.Users,
		tokens:  d.Tokens,
		feed:    d.Feed,
		history: d.History,
		logger:  logger,
	}

	a.setupRoutes()
	return a
}

// setupRoutes configures all API endpoints
func (a *API) setupRoutes() {
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "QuickBite API is running"})
	})

	v1 := a.Router.Group("/api/v1")
	{
		v1.POST("/auth/register", a.Register)
		v1.POST("/auth/login", a.Login)

		v1.GET("/menu", a.GetMenu)
	}

	student := v1.Group("", auth.Middleware(a.tokens))
	{
		student.GET("/auth/me", a.Profile)

		student.GET("/cart", a.GetCart)
		student.POST("/cart/items", a.AddCartItem)
		student.PUT("/cart/items/:id", a.UpdateCartItem)
		student.DELETE("/cart/items/:id", a.RemoveCartItem)
		student.DELETE("/cart", a.ClearCart)
		student.PUT("/cart/pickup", a.SetPickup)

		student.POST("/orders", a.PlaceCartOrder)
		student.POST("/orders/single", a.PlaceSingleOrder)
		student.GET("/orders", a.ListOrders)
		student.GET("/orders/:id", a.TrackOrder)
	}

	admin := student.Group("/admin", auth.RequireAdmin())
	{
		admin.GET("/dashboard", a.GetDashboard)
		admin.PUT("/orders/:id/status", a.UpdateOrderStatus)
		if a.history != nil {
			admin.GET("/orders/:id/history", a.GetOrderHistory)
		}
		if a.feed != nil {
			admin.GET("/feed", a.feed)
		}
	}
}

// respondError answers with the status and kind of err.
func (a *API) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed",
			zap.String("request_id", logging.RequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error(), "kind": apperr.Kind(err)})
}

// bind decodes the JSON body into v. Malformed bodies are validation errors.
func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

// currentUser returns the claims of the authenticated caller.
func currentUser(c *gin.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return nil, errors.New("request reached a protected handler without claims")
	}
	return claims, nil
}

// validatePickup checks the pickup selections against the fixed slot and
// location sets.
func validatePickup(slot, location string) error {
	if slot == "" || location == "" {
		return fmt.Errorf("%w: please select a pickup time and location", apperr.ErrValidation)
	}
	if !models.IsTimeSlot(slot) {
		return fmt.Errorf("%w: unknown pickup time %q", apperr.ErrValidation, slot)
	}
	if !models.IsPickupLocation(location) {
		return fmt.Errorf("%w: unknown pickup location %q", apperr.ErrValidation, location)
	}
	return nil
}
