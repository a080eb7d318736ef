package model

import (
	"time"

	"gorm.io/gorm"
)

// BuildingSpec describes the user-provided shape of a building. All
// dimensions are in meters and must be positive; rotation is degrees
// counter-clockwise in [0, 360).
type BuildingSpec struct {
	Center      Coordinate       `json:"center"`
	WidthM      float64          `json:"width_m"`
	LengthM     float64          `json:"length_m"`
	HeightM     float64          `json:"height_m"`
	RotationDeg float64          `json:"rotation_deg"`
	Policy      ConversionPolicy `json:"policy"`
}

// BuildingPG is the GORM model for the Building entity.
type BuildingPG struct {
	ID          string           `gorm:"primaryKey"`
	Name        string           `gorm:"size:255;not null"`
	Address     string           `gorm:"size:512"`
	Lat         float64          `gorm:"not null"`
	Lng         float64          `gorm:"not null"`
	WidthM      float64          `gorm:"not null"`
	LengthM     float64          `gorm:"not null"`
	HeightM     float64          `gorm:"not null"`
	RotationDeg float64          `gorm:"not null"`
	Policy      ConversionPolicy `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the table name
func (BuildingPG) TableName() string {
	return "buildings"
}

// Building is the in-memory model: the spec plus the footprint computed
// from it.
type Building struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Address string       `json:"address,omitempty"`
	Spec    BuildingSpec `json:"spec"`

	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"-"`

	// Footprint is derived from Spec and cached alongside it.
	Footprint *Footprint `json:"footprint,omitempty"`
}

// BuildingFromPG creates a Building from BuildingPG
func BuildingFromPG(pg *BuildingPG) *Building {
	return &Building{
		ID:      pg.ID,
		Name:    pg.Name,
		Address: pg.Address,
		Spec: BuildingSpec{
			Center:      Coordinate{Latitude: pg.Lat, Longitude: pg.Lng},
			WidthM:      pg.WidthM,
			LengthM:     pg.LengthM,
			HeightM:     pg.HeightM,
			RotationDeg: pg.RotationDeg,
			Policy:      pg.Policy,
		},
		UpdatedAt: pg.UpdatedAt,
		CreatedAt: pg.CreatedAt,
	}
}

// ToPG converts the building to its PostgreSQL row.
func (b *Building) ToPG() *BuildingPG {
	return &BuildingPG{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		Lat:         b.Spec.Center.Latitude,
		Lng:         b.Spec.Center.Longitude,
		WidthM:      b.Spec.WidthM,
		LengthM:     b.Spec.LengthM,
		HeightM:     b.Spec.HeightM,
		RotationDeg: b.Spec.RotationDeg,
		Policy:      b.Spec.Policy,
	}
}
