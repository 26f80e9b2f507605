package utils

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/iterator"
)

// probe checks one backing store within the given deadline.
type probe func(ctx context.Context) error

// HealthStatus is the latest reachability snapshot of the backing stores:
// Firestore (tray, trips, directory), Mongo (report archive) and the Redis
// clients.
type HealthStatus struct {
	Firestore bool      `json:"firestore"`
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// snapshotHealth runs every probe against a shared deadline.
func snapshotHealth(ctx context.Context, fs probe, mongoP probe, redisProbes []probe) HealthStatus {
	var redisHealth []bool
	for _, p := range redisProbes {
		redisHealth = append(redisHealth, p(ctx) == nil)
	}
	return HealthStatus{
		Firestore: fs(ctx) == nil,
		Mongo:     mongoP(ctx) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
}

// firestoreProbe issues one bounded RPC. Listing the first collection id is
// enough to prove the connection without reading document data.
func firestoreProbe(client *firestore.Client) probe {
	return func(ctx context.Context) error {
		if _, err := client.Collections(ctx).Next(); err != nil && err != iterator.Done {
			return err
		}
		return nil
	}
}

// StartHealthMonitor checks the backing stores once a minute and keeps the
// result in memory for the health endpoint.
func StartHealthMonitor(fsClient *firestore.Client, mongoClient *mongo.Client, redisClients []*redis.Client) {
	fs := firestoreProbe(fsClient)
	mongoP := func(ctx context.Context) error {
		return mongoClient.Ping(ctx, nil)
	}
	var redisProbes []probe
	for _, client := range redisClients {
		client := client
		redisProbes = append(redisProbes, func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			snap := snapshotHealth(ctx, fs, mongoP, redisProbes)
			cancel()

			healthMu.Lock()
			currentHealth = snap
			healthMu.Unlock()
		}
	}()
}
