package routes

import (
	"errors"
	"net/http"

	"buildmap/internal/geometry"
	"buildmap/internal/model"

	"github.com/gin-gonic/gin"
)

// FootprintRequest is the payload for a stateless footprint computation.
type FootprintRequest struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	WidthM      float64 `json:"width_m" binding:"required"`
	LengthM     float64 `json:"length_m" binding:"required"`
	HeightM     float64 `json:"height_m" binding:"required"`
	RotationDeg float64 `json:"rotation_deg"`
	Policy      string  `json:"policy"`
}

// SetupFootprintHandlers registers the footprint endpoints
func SetupFootprintHandlers(router *gin.RouterGroup) {
	router.POST("/footprint", BuildFootprint)
}

// BuildFootprint computes a footprint without creating a building.
func BuildFootprint(c *gin.Context) {
	var req FootprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	center := model.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	if !center.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinate out of range"})
		return
	}

	policy, ok := model.ParseConversionPolicy(req.Policy)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown conversion policy: " + req.Policy})
		return
	}

	footprint, err := geometry.BuildFootprint(center, req.WidthM, req.LengthM, req.HeightM, req.RotationDeg, policy)
	if err != nil {
		if errors.Is(err, geometry.ErrInvalidDimension) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"footprint": footprint,
		"policy":    policy.String(),
	})
}
