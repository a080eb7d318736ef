package routes

import (
	"errors"
	"net/http"

	"buildmap/internal/geocode"
	"buildmap/internal/geometry"
	"buildmap/internal/model"
	"buildmap/internal/render"
	"buildmap/internal/service/building"
	"buildmap/internal/service/zone"

	"github.com/gin-gonic/gin"
)

// BuildingRequest creates a building from either a free-text address or
// an explicit coordinate pair.
type BuildingRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	WidthM      float64  `json:"width_m" binding:"required"`
	LengthM     float64  `json:"length_m" binding:"required"`
	HeightM     float64  `json:"height_m" binding:"required"`
	RotationDeg float64  `json:"rotation_deg"`
	Policy      string   `json:"policy"`
}

// SetupBuildingHandlers registers the building endpoints
func SetupBuildingHandlers(router *gin.RouterGroup, geocoder *geocode.Client) {
	buildingGroup := router.Group("/buildings")

	buildingGroup.POST("", func(c *gin.Context) { CreateBuilding(c, geocoder) })
	buildingGroup.GET("", ListBuildings)
	buildingGroup.GET("/:id", GetBuilding)
	buildingGroup.GET("/:id/scene", BuildingScene)
	buildingGroup.DELETE("/:id", DeleteBuilding)
}

// CreateBuilding resolves the center (geocoding the address when no
// coordinates are given), gates the height against the zones covering
// it and stores the resulting building.
func CreateBuilding(c *gin.Context, geocoder *geocode.Client) {
	var req BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, ok := model.ParseConversionPolicy(req.Policy)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown conversion policy: " + req.Policy})
		return
	}

	var center model.Coordinate
	address := req.Address
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		center = model.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	case req.Address != "":
		location, err := geocoder.Geocode(c.Request.Context(), req.Address)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service unavailable"})
			return
		}
		if location == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		center = model.Coordinate{Latitude: location.Latitude, Longitude: location.Longitude}
		address = location.DisplayName
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either address or latitude/longitude is required"})
		return
	}

	if !center.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinate out of range"})
		return
	}

	spec := model.BuildingSpec{
		Center:      center,
		WidthM:      req.WidthM,
		LengthM:     req.LengthM,
		HeightM:     req.HeightM,
		RotationDeg: req.RotationDeg,
		Policy:      policy,
	}

	b, err := building.GetBuildingService().Create(c.Request.Context(), req.Name, address, spec)
	if err != nil {
		switch {
		case errors.Is(err, building.ErrHeightRestricted):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, geometry.ErrInvalidDimension):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"building": b})
}

// ListBuildings returns all buildings.
func ListBuildings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"buildings": building.GetBuildingService().All()})
}

// GetBuilding returns one building by ID.
func GetBuilding(c *gin.Context) {
	b, ok := building.GetBuildingService().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "building not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"building": b})
}

// BuildingScene returns the render payload for a building: its
// extruded footprint plus overlays for the zones covering its center.
func BuildingScene(c *gin.Context) {
	b, ok := building.GetBuildingService().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "building not found"})
		return
	}
	if b.Footprint == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "building has no footprint"})
		return
	}

	zones := zone.GetZoneService().ZonesAt(b.Spec.Center.Latitude, b.Spec.Center.Longitude)
	style := c.Query("style")
	if style == "satellite" {
		style = render.MapStyleSatellite
	} else {
		style = render.MapStyleDark
	}

	scene := render.BuildingScene(*b.Footprint, b.Spec.Center, zones, style)
	c.JSON(http.StatusOK, scene)
}

// DeleteBuilding removes a building.
func DeleteBuilding(c *gin.Context) {
	if !building.GetBuildingService().Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "building not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
