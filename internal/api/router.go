package api

import (
	routes "buildmap/internal/api/handlers"
	"buildmap/internal/geocode"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, geocoder *geocode.Client) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""))

	// Setup domain handlers
	routes.SetupFootprintHandlers(api)
	routes.SetupZoneHandlers(api)
	routes.SetupBuildingHandlers(api, geocoder)
	routes.SetupGeocodeHandlers(api, geocoder)
}
