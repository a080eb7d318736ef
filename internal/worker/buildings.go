package worker

import (
	"log"
	"time"

	"buildmap/internal/service/building"
)

const (
	// PostgresFlushInterval defines how often dirty buildings are
	// persisted to PostgreSQL
	PostgresFlushInterval = 60 * time.Second

	// RedisSnapshotInterval defines how often footprints are
	// snapshotted to Redis
	RedisSnapshotInterval = 10 * time.Second
)

// StartBuildingsWorker starts the workers that persist building state
func StartBuildingsWorker() {
	buildingService := building.GetBuildingService()

	pgTicker := time.NewTicker(PostgresFlushInterval)
	go func() {
		for range pgTicker.C {
			buildingService.FlushToPG()
		}
	}()

	redisTicker := time.NewTicker(RedisSnapshotInterval)
	go func() {
		for range redisTicker.C {
			buildingService.SnapshotFootprintsToRedis()
		}
	}()

	log.Println("Buildings worker started with intervals:", PostgresFlushInterval, RedisSnapshotInterval)
}
