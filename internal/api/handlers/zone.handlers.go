package routes

import (
	"net/http"

	"buildmap/internal/service/zone"

	"github.com/gin-gonic/gin"
)

// SetupZoneHandlers registers the zone query endpoints
func SetupZoneHandlers(router *gin.RouterGroup) {
	zoneGroup := router.Group("/zones")

	zoneGroup.GET("", ListZones)
	zoneGroup.GET("/at", ZonesAtPoint)
	zoneGroup.GET("/max-height", MaxHeightAtPoint)
}

// ListZones returns every loaded zone.
func ListZones(c *gin.Context) {
	zones := zone.GetZoneService().AllZones()

	out := make([]gin.H, 0, len(zones))
	for _, z := range zones {
		out = append(out, gin.H{
			"id":             z.ID,
			"name":           z.Name,
			"height_limit_m": z.HeightLimitM,
			"geometry":       z.Geometry,
		})
	}
	c.JSON(http.StatusOK, gin.H{"zones": out})
}

// ZonesAtPoint returns the zones containing a point.
func ZonesAtPoint(c *gin.Context) {
	point, ok := coordinateFromQuery(c, "lat", "lng")
	if !ok {
		return
	}

	zones := zone.GetZoneService().ZonesAt(point.Latitude, point.Longitude)
	out := make([]gin.H, 0, len(zones))
	for _, z := range zones {
		out = append(out, gin.H{
			"id":             z.ID,
			"name":           z.Name,
			"height_limit_m": z.HeightLimitM,
		})
	}
	c.JSON(http.StatusOK, gin.H{"zones": out})
}

// MaxHeightAtPoint returns the strictest height limit at a point. When
// no zone contains the point, limited is false and no limit is given.
func MaxHeightAtPoint(c *gin.Context) {
	point, ok := coordinateFromQuery(c, "lat", "lng")
	if !ok {
		return
	}

	limit, limited := zone.GetZoneService().MaxHeightAt(point.Latitude, point.Longitude)
	if !limited {
		c.JSON(http.StatusOK, gin.H{"limited": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"limited":        true,
		"height_limit_m": limit,
	})
}
