package util

import (
	"math"
	"testing"

	"buildmap/internal/model"
)

func TestDistanceMetersZero(t *testing.T) {
	p := model.Coordinate{Latitude: 43.4650, Longitude: -80.5400}
	if d := DistanceMeters(p, p); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestDistanceMetersOneDegreeLatitude(t *testing.T) {
	a := model.Coordinate{Latitude: 43.0, Longitude: -80.54}
	b := model.Coordinate{Latitude: 44.0, Longitude: -80.54}

	// One degree of latitude is roughly 111.2 km on the spherical model.
	d := DistanceMeters(a, b)
	want := 111195.0
	if math.Abs(d-want) > want*0.01 {
		t.Errorf("one degree latitude = %v m, want about %v m", d, want)
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	a := model.Coordinate{Latitude: 43.4650, Longitude: -80.5400}
	b := model.Coordinate{Latitude: 43.4700, Longitude: -80.5300}
	if DistanceMeters(a, b) != DistanceMeters(b, a) {
		t.Error("distance is not symmetric")
	}
}

func TestShortUUIDLength(t *testing.T) {
	id := ShortUUID()
	if len(id) != 22 {
		t.Errorf("ShortUUID length = %d, want 22", len(id))
	}
	if id == ShortUUID() {
		t.Error("two ShortUUID calls returned the same value")
	}
}
