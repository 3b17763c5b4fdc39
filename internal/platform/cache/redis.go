package cache

import (
	"context"
	"log"

	"algoclub/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis opens the snapshot cache. Redis is optional: with no address
// configured, or with the server unreachable, callers see a nil client and
// read live from the store instead.
func ConnectRedis() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("Redis not configured, ranking cache disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Printf("Could not connect to Redis, ranking cache disabled: %v", err)
		RDB = nil
		return
	}
	log.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		log.Println("Redis connection closed.")
	}
}
