package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/internal/service"
)

func parseProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}

// HandleListProducts handles GET /api/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productSvc := service.NewProductService(repos, logger)
		products, err := productSvc.ListProducts(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products), "count": len(products)})
	}
}

// HandleGetProduct handles GET /api/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		productSvc := service.NewProductService(repos, logger)
		product, err := productSvc.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

// HandleCreateProduct handles POST /api/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input service.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		productSvc := service.NewProductService(repos, logger)
		product, err := productSvc.CreateProduct(c.Request.Context(), input)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, toProductResponse(product))
	}
}

// HandleUpdateProduct handles PUT /api/products/:id
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		var input service.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		productSvc := service.NewProductService(repos, logger)
		product, err := productSvc.UpdateProduct(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

// HandleDeleteProduct handles DELETE /api/products/:id
func HandleDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		productSvc := service.NewProductService(repos, logger)
		if err := productSvc.DeleteProduct(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
