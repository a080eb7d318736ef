package util

import (
	"buildmap/internal/model"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two
// coordinates. Informational only; footprint and zone computations
// never depend on it.
func DistanceMeters(a, b model.Coordinate) float64 {
	// Convert coordinates from degrees to S2 points
	pointA := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Latitude, a.Longitude))
	pointB := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Latitude, b.Longitude))

	// Angle between points, then distance on Earth's surface
	angle := s1.Angle(s2.ChordAngleBetweenPoints(pointA, pointB).Angle())

	return angle.Radians() * earthRadiusMeters
}
