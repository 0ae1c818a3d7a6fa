package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/api/middleware"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/internal/service"
)

// UpdateCartItemRequest represents the quantity change payload
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// HandleGetCart handles GET /api/cart
func HandleGetCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		cartSvc := service.NewCartService(repos, logger)
		cart, err := cartSvc.GetCart(c.Request.Context(), identity.Email)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

// HandleAddCartItem handles POST /api/cart/items
func HandleAddCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		cartSvc := service.NewCartService(repos, logger)
		cart, created, err := cartSvc.AddItem(c.Request.Context(), identity.Email, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		status := http.StatusOK
		message := "item added to cart"
		if created {
			status = http.StatusCreated
			message = "cart created"
		}
		c.JSON(status, gin.H{"message": message, "cart": toCartResponse(cart)})
	}
}

// HandleUpdateCartItem handles PUT /api/cart/items/:productId
func HandleUpdateCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		cartSvc := service.NewCartService(repos, logger)
		cart, err := cartSvc.UpdateItemQuantity(c.Request.Context(), identity.Email, productID, req.Quantity)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart updated", "cart": toCartResponse(cart)})
	}
}

// HandleRemoveCartItem handles DELETE /api/cart/items/:productId
func HandleRemoveCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		cartSvc := service.NewCartService(repos, logger)
		cart, err := cartSvc.RemoveItem(c.Request.Context(), identity.Email, productID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "item removed", "cart": toCartResponse(cart)})
	}
}

// HandleClearCart handles DELETE /api/cart
func HandleClearCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		cartSvc := service.NewCartService(repos, logger)
		cart, err := cartSvc.ClearCart(c.Request.Context(), identity.Email)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart cleared", "cart": toCartResponse(cart)})
	}
}
