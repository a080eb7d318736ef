package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gorm.io/gorm"
)

// ZonePG model for PostgreSQL storage
type ZonePG struct {
	ID           string  `gorm:"primaryKey"`
	Name         string  `gorm:"size:255;not null"`
	Geometry     string  `gorm:"type:text;not null"`
	HeightLimitM float64 `gorm:"not null"`

	UpdatedAt time.Time      `gorm:"column:updated_at"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (ZonePG) TableName() string {
	return "zones"
}

// Zone is a fixed geographic region with a maximum permitted building
// height. Zones are immutable for the process lifetime.
type Zone struct {
	ID           string
	Name         string
	Geometry     string // GeoJSON polygon as a string
	HeightLimitM float64

	UpdatedAt time.Time
	CreatedAt time.Time

	// Cached data for quick access
	Polygon     *orb.Polygon // Pre-parsed polygon for quick calculations
	BoundingBox *orb.Bound   // Bounds of the polygon for quick checks
}

// ZoneFromPG creates a Zone from ZonePG
func ZoneFromPG(pg *ZonePG) *Zone {
	return &Zone{
		ID:           pg.ID,
		Name:         pg.Name,
		Geometry:     pg.Geometry,
		HeightLimitM: pg.HeightLimitM,
		UpdatedAt:    pg.UpdatedAt,
		CreatedAt:    pg.CreatedAt,
	}
}

// ToPG converts the zone to its PostgreSQL row.
func (z *Zone) ToPG() *ZonePG {
	return &ZonePG{
		ID:           z.ID,
		Name:         z.Name,
		Geometry:     z.Geometry,
		HeightLimitM: z.HeightLimitM,
	}
}

// ParseGeometry decodes the GeoJSON geometry column and fills the
// cached polygon and bounding box.
func (z *Zone) ParseGeometry() error {
	geom, err := geojson.UnmarshalGeometry([]byte(z.Geometry))
	if err != nil {
		return fmt.Errorf("failed to decode zone %s geometry: %w", z.ID, err)
	}

	polygon, ok := geom.Geometry().(orb.Polygon)
	if !ok {
		return fmt.Errorf("zone %s geometry is %s, expected Polygon", z.ID, geom.Type)
	}

	bound := polygon.Bound()
	z.Polygon = &polygon
	z.BoundingBox = &bound
	return nil
}

// SetPolygon replaces the zone geometry with the given polygon,
// re-encoding the GeoJSON column to match.
func (z *Zone) SetPolygon(polygon orb.Polygon) error {
	data, err := json.Marshal(geojson.NewGeometry(polygon))
	if err != nil {
		return fmt.Errorf("failed to encode zone %s geometry: %w", z.ID, err)
	}

	bound := polygon.Bound()
	z.Geometry = string(data)
	z.Polygon = &polygon
	z.BoundingBox = &bound
	return nil
}
