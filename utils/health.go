package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the service's external dependencies.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	healthMu      sync.RWMutex
	currentHealth HealthStatus
)

// GetHealthStatus returns the most recent snapshot. Served by /health.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings mongo and each redis client once a minute and
// keeps the snapshot current. The first check runs immediately so /health is
// meaningful right after startup.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		snapshot := HealthStatus{CheckedAt: time.Now()}
		for _, client := range redisClients {
			snapshot.Redis = append(snapshot.Redis, client.Ping(ctx).Err() == nil)
		}
		snapshot.Mongo = mongoClient.Ping(ctx, nil) == nil

		healthMu.Lock()
		currentHealth = snapshot
		healthMu.Unlock()
	}

	go func() {
		check()
		for range time.Tick(time.Minute) {
			check()
		}
	}()
}
