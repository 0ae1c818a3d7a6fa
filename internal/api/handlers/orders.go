package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/api/middleware"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/internal/service"
)

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return uuid.Nil, false
	}
	return id, true
}

// HandlePlaceOrder handles POST /api/orders
func HandlePlaceOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		orderSvc := service.NewOrderService(repos, logger)
		order, err := orderSvc.PlaceOrder(c.Request.Context(), identity.Email, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "order placed", "order": toOrderResponse(order)})
	}
}

// HandleListMyOrders handles GET /api/orders
func HandleListMyOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderSvc := service.NewOrderService(repos, logger)
		orders, err := orderSvc.ListOrders(c.Request.Context(), identity.Email)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders), "count": len(orders)})
	}
}

// HandleGetOrder handles GET /api/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		orderSvc := service.NewOrderService(repos, logger)
		order, err := orderSvc.GetOrder(c.Request.Context(), identity.Email, id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}

// HandleCancelOrder handles PATCH /api/orders/:id/cancel
func HandleCancelOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		orderSvc := service.NewOrderService(repos, logger)
		order, err := orderSvc.CancelOrder(c.Request.Context(), identity.Email, id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order cancelled", "order": toOrderResponse(order)})
	}
}

// HandleRequestReturn handles PATCH /api/orders/:id/return
func HandleRequestReturn(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		orderSvc := service.NewOrderService(repos, logger)
		order, err := orderSvc.RequestReturn(c.Request.Context(), identity.Email, id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "return requested", "order": toOrderResponse(order)})
	}
}
