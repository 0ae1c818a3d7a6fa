package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/internal/service"
)

// UpdateOrderStatusRequest toggles one fulfillment stage
type UpdateOrderStatusRequest struct {
	Stage     string `json:"stage" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

// HandleListAllOrders handles GET /api/orders/admin
func HandleListAllOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit < 1 || limit > 200 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		orderSvc := service.NewOrderService(repos, logger)
		orders, err := orderSvc.ListAllOrders(c.Request.Context(), limit, offset)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders), "count": len(orders)})
	}
}

// HandleUpdateOrderStatus handles PATCH /api/orders/admin/:id/status
func HandleUpdateOrderStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		orderSvc := service.NewOrderService(repos, logger)
		order, err := orderSvc.SetOrderStage(c.Request.Context(), id, req.Stage, *req.Completed)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "order": toOrderResponse(order)})
	}
}

// HandleDeleteOrder handles DELETE /api/orders/admin/:id
func HandleDeleteOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		orderSvc := service.NewOrderService(repos, logger)
		if err := orderSvc.DeleteOrder(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

// HandleGetOrderEvents handles GET /api/orders/admin/:id/events
func HandleGetOrderEvents(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		events, err := repos.OrderEvent.GetByOrderID(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"events": toOrderEventResponses(events), "count": len(events)})
	}
}
