// controllers/metrics.go - Editorial metrics projections
package controllers

import (
	"net/http"

	"manuscript-review-api/config"
	"manuscript-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetReviewTurnaround returns deterministic review-time averages derived
// from submission and review timestamps.
func GetReviewTurnaround(c *gin.Context) {
	metrics := services.NewMetricsService(config.DB)

	turnaround, err := metrics.ReviewTurnaround()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute review metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"metrics": turnaround,
	})
}
