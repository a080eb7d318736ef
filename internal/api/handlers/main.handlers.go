package routes

import (
	"net/http"
	"strconv"

	"buildmap/internal/model"
	"buildmap/internal/util"

	"github.com/gin-gonic/gin"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "buildmap",
			"status":  "ok",
		})
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/distance", Distance)
}

// Distance returns the great-circle distance in meters between two
// coordinates. Informational only.
func Distance(c *gin.Context) {
	a, ok := coordinateFromQuery(c, "lat1", "lng1")
	if !ok {
		return
	}
	b, ok := coordinateFromQuery(c, "lat2", "lng2")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":       a,
		"to":         b,
		"distance_m": util.DistanceMeters(a, b),
	})
}

// coordinateFromQuery parses and validates a lat/lng query pair,
// answering 400 itself when the pair is missing or out of range.
func coordinateFromQuery(c *gin.Context, latKey, lngKey string) (model.Coordinate, bool) {
	lat, err1 := strconv.ParseFloat(c.Query(latKey), 64)
	lng, err2 := strconv.ParseFloat(c.Query(lngKey), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query parameters " + latKey + " and " + lngKey + " are required numbers",
		})
		return model.Coordinate{}, false
	}

	coordinate := model.Coordinate{Latitude: lat, Longitude: lng}
	if !coordinate.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "coordinate out of range",
		})
		return model.Coordinate{}, false
	}
	return coordinate, true
}
