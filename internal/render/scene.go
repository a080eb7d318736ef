package render

import (
	"buildmap/internal/model"
)

// Map styles offered to the front end, matching the basemaps the
// visualizer uses.
const (
	MapStyleDark      = "mapbox://styles/mapbox/dark-v10"
	MapStyleSatellite = "mapbox://styles/mapbox/satellite-v9"
)

// Default layer styling: grey extruded building, black wireframe,
// translucent red zone overlay.
var (
	buildingFillColor = [4]int{169, 169, 169, 200}
	buildingLineColor = [4]int{0, 0, 0, 255}
	zoneFillColor     = [4]int{255, 0, 0, 60}
	zoneLineColor     = [4]int{255, 0, 0, 200}
)

// PolygonRecord is one extruded polygon for a deck.gl-style
// PolygonLayer. Polygon vertices are (lon, lat) pairs.
type PolygonRecord struct {
	Polygon   [][2]float64 `json:"polygon"`
	Elevation float64      `json:"elevation"`
	FillColor [4]int       `json:"fill_color"`
	LineColor [4]int       `json:"line_color"`
	Extruded  bool         `json:"extruded"`
	Wireframe bool         `json:"wireframe"`
}

// ViewState is the initial camera for the rendered map.
type ViewState struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      int     `json:"zoom"`
	Pitch     int     `json:"pitch"`
	Bearing   int     `json:"bearing"`
}

// Scene is the full render payload consumed by the map front end. The
// service only assembles it; rendering happens client-side.
type Scene struct {
	Layers    []PolygonRecord `json:"layers"`
	ViewState ViewState       `json:"view_state"`
	MapStyle  string          `json:"map_style"`
}

// BuildingRecord converts a footprint into its polygon layer record.
func BuildingRecord(footprint model.Footprint) PolygonRecord {
	polygon := make([][2]float64, 0, len(footprint.Vertices))
	for _, v := range footprint.Vertices {
		polygon = append(polygon, [2]float64{v.Longitude, v.Latitude})
	}

	return PolygonRecord{
		Polygon:   polygon,
		Elevation: footprint.ElevationM,
		FillColor: buildingFillColor,
		LineColor: buildingLineColor,
		Extruded:  true,
		Wireframe: true,
	}
}

// ZoneRecord converts a restricted zone into a translucent overlay
// extruded to its height limit.
func ZoneRecord(zone *model.Zone) PolygonRecord {
	var polygon [][2]float64
	if zone.Polygon != nil && len(*zone.Polygon) > 0 {
		ring := (*zone.Polygon)[0]
		polygon = make([][2]float64, 0, len(ring))
		for _, p := range ring {
			polygon = append(polygon, [2]float64{p[0], p[1]})
		}
	}

	return PolygonRecord{
		Polygon:   polygon,
		Elevation: zone.HeightLimitM,
		FillColor: zoneFillColor,
		LineColor: zoneLineColor,
		Extruded:  true,
		Wireframe: false,
	}
}

// BuildingScene assembles the scene for a single building: its
// footprint plus overlays for the zones given, camera centered over the
// building.
func BuildingScene(footprint model.Footprint, center model.Coordinate, zones []*model.Zone, style string) Scene {
	layers := []PolygonRecord{BuildingRecord(footprint)}
	for _, zone := range zones {
		layers = append(layers, ZoneRecord(zone))
	}

	if style == "" {
		style = MapStyleDark
	}

	return Scene{
		Layers: layers,
		ViewState: ViewState{
			Longitude: center.Longitude,
			Latitude:  center.Latitude,
			Zoom:      16,
			Pitch:     45,
			Bearing:   0,
		},
		MapStyle: style,
	}
}
