package zone

import (
	"testing"
)

// Reference points against the seeded Waterloo rectangle
// (-80.58,43.49) (-80.58,43.44) (-80.50,43.44) (-80.50,43.49).
const (
	INSIDE_LAT  = 43.465
	INSIDE_LNG  = -80.54
	OUTSIDE_LAT = 43.465
	OUTSIDE_LNG = -79.0
)

func newTestService(t *testing.T) *ZoneService {
	t.Helper()
	s := NewService()
	if err := s.AddZone(SeedZone()); err != nil {
		t.Fatalf("AddZone: %v", err)
	}
	return s
}

func TestContainsCenterPoint(t *testing.T) {
	s := newTestService(t)
	if !s.Contains(INSIDE_LAT, INSIDE_LNG) {
		t.Errorf("Contains(%v, %v) = false, want true", INSIDE_LAT, INSIDE_LNG)
	}
}

func TestContainsFarOutsidePoint(t *testing.T) {
	s := newTestService(t)
	if s.Contains(OUTSIDE_LAT, OUTSIDE_LNG) {
		t.Errorf("Contains(%v, %v) = true, want false", OUTSIDE_LAT, OUTSIDE_LNG)
	}
}

func TestZonesAtReturnsSeedZone(t *testing.T) {
	s := newTestService(t)
	zones := s.ZonesAt(INSIDE_LAT, INSIDE_LNG)
	if len(zones) != 1 {
		t.Fatalf("ZonesAt returned %d zones, want 1", len(zones))
	}
	if zones[0].HeightLimitM != 100 {
		t.Errorf("zone height limit = %v, want 100", zones[0].HeightLimitM)
	}
}

func TestMaxHeightInsideZone(t *testing.T) {
	s := newTestService(t)
	limit, limited := s.MaxHeightAt(INSIDE_LAT, INSIDE_LNG)
	if !limited {
		t.Fatal("MaxHeightAt inside zone: limited = false, want true")
	}
	if limit != 100 {
		t.Errorf("MaxHeightAt inside zone = %v, want 100", limit)
	}
}

func TestMaxHeightOutsideZoneIsUnbounded(t *testing.T) {
	s := newTestService(t)
	if _, limited := s.MaxHeightAt(OUTSIDE_LAT, OUTSIDE_LNG); limited {
		t.Error("MaxHeightAt outside zone: limited = true, want false")
	}
}

func TestMaxHeightPicksStrictestZone(t *testing.T) {
	s := newTestService(t)

	stricter := SeedZone()
	stricter.ID = "stricter"
	stricter.HeightLimitM = 40
	if err := s.AddZone(stricter); err != nil {
		t.Fatalf("AddZone: %v", err)
	}

	limit, limited := s.MaxHeightAt(INSIDE_LAT, INSIDE_LNG)
	if !limited || limit != 40 {
		t.Errorf("MaxHeightAt = (%v, %v), want (40, true)", limit, limited)
	}
}

func TestContainsBoundaryPoints(t *testing.T) {
	s := newTestService(t)

	// Edge midpoints and corners of the seed rectangle all count as
	// inside, including the east/north side the ray-cast alone would
	// exclude.
	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"west edge midpoint", 43.465, -80.58},
		{"east edge midpoint", 43.465, -80.50},
		{"south edge midpoint", 43.44, -80.54},
		{"north edge midpoint", 43.49, -80.54},
		{"south-west corner", 43.44, -80.58},
		{"north-east corner", 43.49, -80.50},
	}
	for _, c := range cases {
		if !s.Contains(c.lat, c.lng) {
			t.Errorf("%s: Contains(%v, %v) = false, want true", c.name, c.lat, c.lng)
		}
	}
}

func TestMaxHeightOnBoundary(t *testing.T) {
	s := newTestService(t)

	// The north-east corner is the hardest boundary case; the limit
	// must apply there too.
	limit, limited := s.MaxHeightAt(43.49, -80.50)
	if !limited || limit != 100 {
		t.Errorf("MaxHeightAt on corner = (%v, %v), want (100, true)", limit, limited)
	}
}

func TestAddZoneReplacesExistingID(t *testing.T) {
	s := newTestService(t)

	replacement := SeedZone()
	replacement.ID = "fixed-id"
	replacement.HeightLimitM = 80
	if err := s.AddZone(replacement); err != nil {
		t.Fatalf("AddZone: %v", err)
	}

	updated := SeedZone()
	updated.ID = "fixed-id"
	updated.HeightLimitM = 60
	if err := s.AddZone(updated); err != nil {
		t.Fatalf("AddZone: %v", err)
	}

	// The index must not keep the replaced entry around.
	seen := 0
	for _, z := range s.ZonesAt(INSIDE_LAT, INSIDE_LNG) {
		if z.ID == "fixed-id" {
			seen++
			if z.HeightLimitM != 60 {
				t.Errorf("replaced zone has limit %v, want 60", z.HeightLimitM)
			}
		}
	}
	if seen != 1 {
		t.Errorf("ZonesAt returned %d entries for a re-added ID, want 1", seen)
	}
}

func TestZonesInBounds(t *testing.T) {
	s := newTestService(t)

	if zones := s.ZonesInBounds(43.0, -81.0, 44.0, -80.0); len(zones) != 1 {
		t.Errorf("ZonesInBounds over the zone returned %d zones, want 1", len(zones))
	}
	if zones := s.ZonesInBounds(50.0, -10.0, 51.0, -9.0); len(zones) != 0 {
		t.Errorf("ZonesInBounds far away returned %d zones, want 0", len(zones))
	}
}

func TestAddZoneParsesGeometry(t *testing.T) {
	s := NewService()
	zone := SeedZone()
	zone.Polygon = nil
	zone.BoundingBox = nil

	if err := s.AddZone(zone); err != nil {
		t.Fatalf("AddZone with unparsed geometry: %v", err)
	}
	if zone.Polygon == nil || zone.BoundingBox == nil {
		t.Error("AddZone did not fill the cached polygon and bounding box")
	}
}
