package zone

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"buildmap/internal/model"
	pg "buildmap/internal/postgres"
	"buildmap/internal/service/storage"
	"buildmap/internal/util"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Default restricted zone: a rectangle over the Waterloo region with a
// 100 m height limit. Seeded into PostgreSQL when the zones table is
// empty so a fresh deployment enforces something sensible.
var defaultZoneRing = orb.Ring{
	{-80.58, 43.49},
	{-80.58, 43.44},
	{-80.50, 43.44},
	{-80.50, 43.49},
	{-80.58, 43.49},
}

const (
	defaultZoneName         = "Waterloo height restriction"
	defaultZoneHeightLimitM = 100.0
)

// ZoneSpatial represents a zone with its spatial information for R-tree indexing
type ZoneSpatial struct {
	ID          string       // Zone identifier
	Polygon     *orb.Polygon // Actual polygon geometry
	BoundingBox *orb.Bound   // Bounds of the polygon
	Zone        *model.Zone  // Reference to the original zone object
}

// Bounds implements the rtreego.Spatial interface
func (z *ZoneSpatial) Bounds() rtreego.Rect {
	minX, minY := z.BoundingBox.Min[0], z.BoundingBox.Min[1]
	maxX, maxY := z.BoundingBox.Max[0], z.BoundingBox.Max[1]

	rect, _ := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{maxX - minX, maxY - minY},
	)

	return rect
}

// ZoneService manages zone data and spatial indexing
type ZoneService struct {
	storage      storage.Storage[string, *model.Zone]
	spatialIndex *rtreego.Rtree          // R-tree spatial index
	spatials     map[string]*ZoneSpatial // Indexed entry per zone ID
	indexMutex   sync.RWMutex            // Mutex for thread-safe index operations
	initialized  bool
	initMutex    sync.Mutex
}

var (
	zoneServiceInstance *ZoneService
	zoneServiceOnce     sync.Once
)

// GetZoneService returns the singleton instance of the ZoneService
func GetZoneService() *ZoneService {
	zoneServiceOnce.Do(func() {
		zoneServiceInstance = NewService()
	})
	return zoneServiceInstance
}

// NewService creates an empty, ready-to-use zone service. Most callers
// want the GetZoneService singleton instead.
func NewService() *ZoneService {
	return &ZoneService{
		storage:      storage.NewMemoryStorage[string, *model.Zone](),
		spatialIndex: rtreego.NewTree(2, 25, 50), // 2D index with min 25, max 50 entries per node
		spatials:     make(map[string]*ZoneSpatial),
	}
}

// SeedZone returns the default restricted zone.
func SeedZone() *model.Zone {
	zone := &model.Zone{
		ID:           util.ShortUUID(),
		Name:         defaultZoneName,
		HeightLimitM: defaultZoneHeightLimitM,
	}
	// Encoding a fixed ring cannot fail.
	_ = zone.SetPolygon(orb.Polygon{defaultZoneRing})
	return zone
}

// InitService loads zones from PostgreSQL, seeding the default zone
// when the table is empty.
func (s *ZoneService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		log.Println("ZoneService already initialized, skipping")
		return nil
	}

	log.Println("Initializing ZoneService...")
	startTime := time.Now()

	zones, err := s.loadAllZonesFromPG()
	if err != nil {
		return fmt.Errorf("failed to load zones from PostgreSQL: %w", err)
	}

	if len(zones) == 0 {
		seed := SeedZone()
		if err := s.saveZoneToPG(seed); err != nil {
			return fmt.Errorf("failed to seed default zone: %w", err)
		}
		zones = append(zones, seed)
		log.Printf("Seeded default zone %q with height limit %.0f m", seed.Name, seed.HeightLimitM)
	}

	for _, zone := range zones {
		if err := s.AddZone(zone); err != nil {
			return err
		}
	}

	log.Printf("ZoneService initialized: %d zones indexed in %v", s.storage.Count(), time.Since(startTime))
	s.initialized = true
	return nil
}

// loadAllZonesFromPG loads all zones from PostgreSQL
func (s *ZoneService) loadAllZonesFromPG() ([]*model.Zone, error) {
	db := pg.GetDB()
	var pgZones []*model.ZonePG

	result := db.Find(&pgZones)
	if result.Error != nil {
		return nil, result.Error
	}

	zones := make([]*model.Zone, len(pgZones))
	for i, pgZone := range pgZones {
		zones[i] = model.ZoneFromPG(pgZone)
	}

	return zones, nil
}

func (s *ZoneService) saveZoneToPG(zone *model.Zone) error {
	return pg.GetDB().Save(zone.ToPG()).Error
}

// AddZone parses the zone geometry if needed, stores the zone and
// inserts it into the spatial index. Re-adding an existing ID replaces
// both the stored zone and its index entry.
func (s *ZoneService) AddZone(zone *model.Zone) error {
	if zone.Polygon == nil || zone.BoundingBox == nil {
		if err := zone.ParseGeometry(); err != nil {
			return err
		}
	}

	s.storage.Set(zone.ID, zone)

	s.indexMutex.Lock()
	defer s.indexMutex.Unlock()

	if old, exists := s.spatials[zone.ID]; exists {
		s.spatialIndex.Delete(old)
	}

	zoneSpatial := &ZoneSpatial{
		ID:          zone.ID,
		Polygon:     zone.Polygon,
		BoundingBox: zone.BoundingBox,
		Zone:        zone,
	}
	s.spatialIndex.Insert(zoneSpatial)
	s.spatials[zone.ID] = zoneSpatial
	return nil
}

// ZonesAt returns all zones containing the given point. A point
// exactly on a zone boundary counts as inside, on every edge: the
// ray-cast alone is half-open, so the boundary is checked explicitly.
func (s *ZoneService) ZonesAt(lat, lng float64) []*model.Zone {
	s.indexMutex.RLock()
	defer s.indexMutex.RUnlock()

	point := orb.Point{lng, lat}

	// Small search rectangle centered on the point for the R-tree
	// bounding box prefilter, so edge points still hit candidates.
	searchRect, err := rtreego.NewRect(
		rtreego.Point{lng - 0.00005, lat - 0.00005},
		[]float64{0.0001, 0.0001},
	)
	if err != nil {
		log.Printf("invalid search rect: %v", err)
		return nil
	}

	spatialResults := s.spatialIndex.SearchIntersect(searchRect)
	if len(spatialResults) == 0 {
		return nil
	}

	// Precise point-in-polygon check on the candidates
	var result []*model.Zone
	for _, item := range spatialResults {
		zoneSpatial := item.(*ZoneSpatial)
		if polygonContains(*zoneSpatial.Polygon, point) {
			result = append(result, zoneSpatial.Zone)
		}
	}

	return result
}

// boundaryEpsilon absorbs float noise when testing whether a point sits
// on a polygon edge.
const boundaryEpsilon = 1e-12

// polygonContains is a boundary-inclusive point-in-polygon test: points
// strictly inside and points on any edge or vertex both count.
func polygonContains(polygon orb.Polygon, point orb.Point) bool {
	if planar.PolygonContains(polygon, point) {
		return true
	}
	for _, ring := range polygon {
		if pointOnRing(ring, point) {
			return true
		}
	}
	return false
}

func pointOnRing(ring orb.Ring, point orb.Point) bool {
	for i := 0; i < len(ring)-1; i++ {
		if pointOnSegment(ring[i], ring[i+1], point) {
			return true
		}
	}
	return false
}

func pointOnSegment(a, b, point orb.Point) bool {
	cross := (b[0]-a[0])*(point[1]-a[1]) - (b[1]-a[1])*(point[0]-a[0])
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}
	if point[0] < math.Min(a[0], b[0])-boundaryEpsilon || point[0] > math.Max(a[0], b[0])+boundaryEpsilon {
		return false
	}
	if point[1] < math.Min(a[1], b[1])-boundaryEpsilon || point[1] > math.Max(a[1], b[1])+boundaryEpsilon {
		return false
	}
	return true
}

// Contains reports whether any zone contains the given point.
func (s *ZoneService) Contains(lat, lng float64) bool {
	return len(s.ZonesAt(lat, lng)) > 0
}

// MaxHeightAt returns the strictest height limit among zones containing
// the point. When no zone contains it, limited is false and the height
// is unbounded; callers must not treat the zero limit as a cap.
func (s *ZoneService) MaxHeightAt(lat, lng float64) (limit float64, limited bool) {
	for _, zone := range s.ZonesAt(lat, lng) {
		if !limited || zone.HeightLimitM < limit {
			limit = zone.HeightLimitM
			limited = true
		}
	}
	return limit, limited
}

// ZonesInBounds returns all zones whose bounding boxes intersect the
// given bounds.
func (s *ZoneService) ZonesInBounds(minLat, minLng, maxLat, maxLng float64) []*model.Zone {
	s.indexMutex.RLock()
	defer s.indexMutex.RUnlock()

	searchRect, err := rtreego.NewRect(
		rtreego.Point{minLng, minLat},
		[]float64{maxLng - minLng, maxLat - minLat},
	)
	if err != nil {
		log.Printf("invalid search rect: %v", err)
		return nil
	}

	spatialResults := s.spatialIndex.SearchIntersect(searchRect)
	if len(spatialResults) == 0 {
		return nil
	}

	var result []*model.Zone
	for _, item := range spatialResults {
		result = append(result, item.(*ZoneSpatial).Zone)
	}

	return result
}

// AllZones returns every loaded zone.
func (s *ZoneService) AllZones() []*model.Zone {
	return s.storage.GetAllValues()
}
