package building

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"buildmap/internal/geometry"
	"buildmap/internal/model"
	pg "buildmap/internal/postgres"
	redis_client "buildmap/internal/redis"
	"buildmap/internal/service/storage"
	"buildmap/internal/service/zone"
	"buildmap/internal/util"
)

const (
	footprintRedisKey = "footprint"
	footprintRedisTTL = 24 * time.Hour
)

// ErrHeightRestricted is returned when a building's height exceeds the
// limit of a zone containing its center. The building is rejected
// before any footprint is computed.
var ErrHeightRestricted = errors.New("height exceeds zone limit")

// BuildingService manages the building lifecycle: validation against
// zone limits, footprint computation and persistence.
type BuildingService struct {
	storage     storage.Storage[string, *model.Building]
	zones       *zone.ZoneService
	initialized bool
	initMutex   sync.Mutex
}

var (
	buildingServiceInstance *BuildingService
	buildingServiceOnce     sync.Once
)

// GetBuildingService returns the singleton instance of the BuildingService.
func GetBuildingService() *BuildingService {
	buildingServiceOnce.Do(func() {
		buildingServiceInstance = NewService(zone.GetZoneService())
	})
	return buildingServiceInstance
}

// NewService creates a building service backed by the given zone
// service. Most callers want the GetBuildingService singleton instead.
func NewService(zones *zone.ZoneService) *BuildingService {
	return &BuildingService{
		storage: storage.NewMemoryStorage[string, *model.Building](),
		zones:   zones,
	}
}

// InitService loads existing buildings from PostgreSQL into memory and
// recomputes their footprints.
func (s *BuildingService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Println("Initializing BuildingService...")
	startTime := time.Now()

	db := pg.GetDB()
	var pgBuildings []*model.BuildingPG
	if result := db.Find(&pgBuildings); result.Error != nil {
		return fmt.Errorf("failed to load buildings from PostgreSQL: %w", result.Error)
	}

	for _, pgBuilding := range pgBuildings {
		building := model.BuildingFromPG(pgBuilding)
		footprint, err := geometry.FootprintForSpec(building.Spec)
		if err != nil {
			log.Printf("Skipping building %s with invalid stored spec: %v", building.ID, err)
			continue
		}
		building.Footprint = &footprint
		s.storage.Set(building.ID, building)
	}
	s.storage.ClearDirty(s.allIDs())

	log.Printf("BuildingService initialized: %d buildings loaded in %v", s.storage.Count(), time.Since(startTime))
	s.initialized = true
	return nil
}

// Create validates the spec against the zones covering its center,
// computes the footprint and stores the building. The zone check runs
// first: a height above the strictest containing zone's limit rejects
// the request before any geometry is computed.
func (s *BuildingService) Create(ctx context.Context, name, address string, spec model.BuildingSpec) (*model.Building, error) {
	if limit, limited := s.zones.MaxHeightAt(spec.Center.Latitude, spec.Center.Longitude); limited && spec.HeightM > limit {
		return nil, fmt.Errorf("%w: %v m > %v m", ErrHeightRestricted, spec.HeightM, limit)
	}

	footprint, err := geometry.FootprintForSpec(spec)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	building := &model.Building{
		ID:        util.ShortUUID(),
		Name:      name,
		Address:   address,
		Spec:      spec,
		CreatedAt: now,
		UpdatedAt: now,
		Footprint: &footprint,
	}

	s.storage.Set(building.ID, building)
	s.cacheFootprint(building)

	return building, nil
}

// Get returns a building by ID.
func (s *BuildingService) Get(id string) (*model.Building, bool) {
	return s.storage.Get(id)
}

// All returns all buildings in memory.
func (s *BuildingService) All() []*model.Building {
	return s.storage.GetAllValues()
}

// Delete removes a building from memory and PostgreSQL.
func (s *BuildingService) Delete(id string) bool {
	if !s.storage.Delete(id) {
		return false
	}
	if db := pg.GetDB(); db != nil {
		if err := db.Delete(&model.BuildingPG{}, "id = ?", id).Error; err != nil {
			log.Printf("Failed to delete building %s from PostgreSQL: %v", id, err)
		}
	}
	return true
}

// FlushToPG saves all dirty buildings to PostgreSQL and clears their
// dirty flags. Called by the persistence worker.
func (s *BuildingService) FlushToPG() {
	dirty := s.storage.GetDirty()
	if len(dirty) == 0 {
		return
	}

	db := pg.GetDB()
	flushed := make([]string, 0, len(dirty))
	for id, building := range dirty {
		if err := db.Save(building.ToPG()).Error; err != nil {
			log.Printf("Failed to save building %s: %v", id, err)
			continue
		}
		flushed = append(flushed, id)
	}
	s.storage.ClearDirty(flushed)

	log.Printf("Persisted %d/%d dirty buildings to PostgreSQL", len(flushed), len(dirty))
}

// SnapshotFootprintsToRedis writes the current footprint of every
// building to Redis for other consumers. No-op without a connection.
func (s *BuildingService) SnapshotFootprintsToRedis() {
	if redis_client.GetClient() == nil {
		return
	}

	count := 0
	s.storage.ForEach(func(id string, building *model.Building) bool {
		if s.cacheFootprint(building) {
			count++
		}
		return true
	})

	if count > 0 {
		log.Printf("Snapshotted %d footprints to Redis", count)
	}
}

func (s *BuildingService) cacheFootprint(building *model.Building) bool {
	if redis_client.GetClient() == nil || building.Footprint == nil {
		return false
	}

	data, err := json.Marshal(building.Footprint)
	if err != nil {
		return false
	}

	key := fmt.Sprintf("%s:%s", footprintRedisKey, building.ID)
	if err := redis_client.Set(key, data, footprintRedisTTL); err != nil {
		log.Printf("Failed to cache footprint for building %s: %v", building.ID, err)
		return false
	}
	return true
}

func (s *BuildingService) allIDs() []string {
	ids := make([]string, 0, s.storage.Count())
	s.storage.ForEach(func(id string, _ *model.Building) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}
