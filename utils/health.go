package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
// Nil fields mean the dependency is not configured.
type HealthStatus struct {
	Storage   string    `json:"storage"`
	Mongo     *bool     `json:"mongo,omitempty"`
	Redis     []bool    `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every configured dependency answered its last ping.
func (h HealthStatus) Healthy() bool {
	if h.Mongo != nil && !*h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth = HealthStatus{Storage: "memory"}
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor checks once immediately, then every interval until ctx is done.
// mongoClient may be nil when the memory backend is used.
func StartHealthMonitor(ctx context.Context, interval time.Duration, storage string, redisClients []*redis.Client, mongoClient *mongo.Client) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		status := HealthStatus{Storage: storage, CheckedAt: time.Now()}
		for _, client := range redisClients {
			status.Redis = append(status.Redis, client.Ping(pingCtx).Err() == nil)
		}
		if mongoClient != nil {
			ok := mongoClient.Ping(pingCtx, nil) == nil
			status.Mongo = &ok
		}

		mu.Lock()
		currentHealth = status
		mu.Unlock()
	}

	check()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check()
			}
		}
	}()
}
