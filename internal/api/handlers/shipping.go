package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/shiprate"
)

// HandleShippingEstimate handles POST /api/shipping/estimate
func HandleShippingEstimate(client *shiprate.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shiprate.RateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		quotes, err := client.GetRates(c.Request.Context(), req)
		if err != nil {
			logger.Error("Failed to fetch shipping rates", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "rate provider error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"rates": quotes, "count": len(quotes)})
	}
}
