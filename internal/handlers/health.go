package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"twibbon-backend/internal/models"
)

// HealthHandler reports liveness for load balancers and uptime checks.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
