package model

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within the WGS84 value range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Point returns the coordinate as an orb point in (lon, lat) order.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// ConversionPolicy selects how meter dimensions become degree offsets.
// The two policies intentionally disagree: they model different source
// conventions and map width/length to different axes.
type ConversionPolicy int

const (
	// PolicyLatitudeCorrected scales longitude offsets by cos(latitude).
	// Width maps to the latitude axis, length to the longitude axis.
	PolicyLatitudeCorrected ConversionPolicy = iota

	// PolicyFixedScale applies a flat 1e-5 degrees-per-meter factor to
	// both axes, ignoring latitude. Width maps to the longitude axis,
	// length to the latitude axis.
	PolicyFixedScale
)

var policyNames = map[ConversionPolicy]string{
	PolicyLatitudeCorrected: "latitude-corrected",
	PolicyFixedScale:        "fixed-scale",
}

func (p ConversionPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseConversionPolicy maps a policy name to its value. The empty
// string defaults to the latitude-corrected policy.
func ParseConversionPolicy(s string) (ConversionPolicy, bool) {
	switch s {
	case "", "latitude-corrected":
		return PolicyLatitudeCorrected, true
	case "fixed-scale":
		return PolicyFixedScale, true
	}
	return PolicyLatitudeCorrected, false
}

// MarshalJSON encodes the policy by name, matching what the API accepts.
func (p ConversionPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a policy name.
func (p *ConversionPolicy) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseConversionPolicy(name)
	if !ok {
		return fmt.Errorf("unknown conversion policy %q", name)
	}
	*p = parsed
	return nil
}
