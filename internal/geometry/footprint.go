package geometry

import (
	"errors"
	"fmt"
	"math"

	"buildmap/internal/model"
)

// metersPerDegree is the approximate length of one degree of latitude.
// One degree of longitude shrinks by cos(latitude) away from the equator.
const metersPerDegree = 111111.0

// degreesPerMeter is the flat factor used by the fixed-scale policy on
// both axes, regardless of latitude.
const degreesPerMeter = 0.00001

// ErrInvalidDimension is returned when a building dimension is zero or
// negative. No partial footprint is ever computed.
var ErrInvalidDimension = errors.New("invalid building dimension")

// DegreeOffsets converts building width and length in meters into full
// degree extents along the longitude and latitude axes.
//
// The latitude-corrected policy divides by cos(latitude) for the
// longitude axis; it degenerates as the latitude approaches the poles
// (the offset diverges) and is not clamped. The fixed-scale policy
// ignores latitude entirely. The two policies also map width and length
// to opposite axes; both mappings are kept as-is.
func DegreeOffsets(policy model.ConversionPolicy, center model.Coordinate, widthM, lengthM float64) (lonOffset, latOffset float64) {
	switch policy {
	case model.PolicyFixedScale:
		lonOffset = widthM * degreesPerMeter
		latOffset = lengthM * degreesPerMeter
	default:
		latOffset = widthM / metersPerDegree
		lonOffset = lengthM / (metersPerDegree * math.Cos(center.Latitude*math.Pi/180.0))
	}
	return lonOffset, latOffset
}

// BuildFootprint computes the 4-vertex footprint of a building centered
// at the given coordinate. Vertices are ordered south-west, south-east,
// north-east, north-west (counter-clockwise); a non-zero rotation turns
// them counter-clockwise about the center in the flat (lon, lat) plane.
//
// The function is pure: identical inputs produce identical output.
func BuildFootprint(center model.Coordinate, widthM, lengthM, heightM, rotationDeg float64, policy model.ConversionPolicy) (model.Footprint, error) {
	if widthM <= 0 {
		return model.Footprint{}, fmt.Errorf("%w: width %v m", ErrInvalidDimension, widthM)
	}
	if lengthM <= 0 {
		return model.Footprint{}, fmt.Errorf("%w: length %v m", ErrInvalidDimension, lengthM)
	}
	if heightM <= 0 {
		return model.Footprint{}, fmt.Errorf("%w: height %v m", ErrInvalidDimension, heightM)
	}

	lonOffset, latOffset := DegreeOffsets(policy, center, widthM, lengthM)
	halfLon := lonOffset / 2
	halfLat := latOffset / 2

	vertices := [4]model.Coordinate{
		{Latitude: center.Latitude - halfLat, Longitude: center.Longitude - halfLon},
		{Latitude: center.Latitude - halfLat, Longitude: center.Longitude + halfLon},
		{Latitude: center.Latitude + halfLat, Longitude: center.Longitude + halfLon},
		{Latitude: center.Latitude + halfLat, Longitude: center.Longitude - halfLon},
	}

	if rotationDeg != 0 {
		// Small footprints only, so no spherical correction: rotate in
		// the (lon, lat) plane as plain Cartesian coordinates.
		sin, cos := math.Sincos(rotationDeg * math.Pi / 180.0)
		for i, v := range vertices {
			dx := v.Longitude - center.Longitude
			dy := v.Latitude - center.Latitude
			vertices[i] = model.Coordinate{
				Latitude:  center.Latitude + dx*sin + dy*cos,
				Longitude: center.Longitude + dx*cos - dy*sin,
			}
		}
	}

	return model.Footprint{Vertices: vertices, ElevationM: heightM}, nil
}

// FootprintForSpec builds the footprint described by a BuildingSpec.
func FootprintForSpec(spec model.BuildingSpec) (model.Footprint, error) {
	return BuildFootprint(spec.Center, spec.WidthM, spec.LengthM, spec.HeightM, spec.RotationDeg, spec.Policy)
}
