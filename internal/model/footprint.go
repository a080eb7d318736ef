package model

import (
	"github.com/paulmach/orb"
)

// Footprint is the extruded base shape of a building: four vertices
// forming a closed rectangle plus the elevation to extrude to.
// Footprints are recomputed from their spec on every change and never
// mutated in place.
type Footprint struct {
	// Vertices are ordered south-west, south-east, north-east,
	// north-west before rotation; the last vertex implicitly connects
	// back to the first.
	Vertices   [4]Coordinate `json:"vertices"`
	ElevationM float64       `json:"elevation_m"`
}

// Ring returns the footprint as a closed orb ring in (lon, lat) order.
func (f Footprint) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(f.Vertices)+1)
	for _, v := range f.Vertices {
		ring = append(ring, v.Point())
	}
	ring = append(ring, f.Vertices[0].Point())
	return ring
}

// Polygon returns the footprint as a single-ring orb polygon.
func (f Footprint) Polygon() orb.Polygon {
	return orb.Polygon{f.Ring()}
}

// Centroid returns the average of the four vertices. For the unrotated
// rectangle this is the building center.
func (f Footprint) Centroid() Coordinate {
	var lat, lng float64
	for _, v := range f.Vertices {
		lat += v.Latitude
		lng += v.Longitude
	}
	n := float64(len(f.Vertices))
	return Coordinate{Latitude: lat / n, Longitude: lng / n}
}
