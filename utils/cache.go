// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"greengarden/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient backs the shared conversation session store.
	SessionCacheClient *redis.Client
	// QueueCacheClient points at the database used by the turn-recording queue.
	QueueCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func pingOrDie(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitSessionCache initializes the Redis client for conversation sessions.
func InitSessionCache() {
	SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
	pingOrDie(SessionCacheClient, "Sessions")
}

// GetSessionCacheClient returns the session client, connecting on first use.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitQueueCache initializes the Redis client for the task queue database.
func InitQueueCache() {
	QueueCacheClient = newRedisClient(config.AppConfig.RedisQueueDB)
	pingOrDie(QueueCacheClient, "Queue")
}

// ActiveRedisClients lists the clients opened so far, for health checks.
func ActiveRedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{SessionCacheClient, QueueCacheClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
