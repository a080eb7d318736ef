package routes

import (
	"net/http"

	"buildmap/internal/geocode"

	"github.com/gin-gonic/gin"
)

// SetupGeocodeHandlers registers the geocoding passthrough endpoint
func SetupGeocodeHandlers(router *gin.RouterGroup, geocoder *geocode.Client) {
	router.GET("/geocode", func(c *gin.Context) { Geocode(c, geocoder) })
}

// Geocode resolves a free-text address to a coordinate.
func Geocode(c *gin.Context, geocoder *geocode.Client) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter address is required"})
		return
	}

	location, err := geocoder.Geocode(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service unavailable"})
		return
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": location})
}
