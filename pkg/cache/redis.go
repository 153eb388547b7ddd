package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, address, password string) (*redis.Client, error) {
	if address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        address,
		Password:    password,
		DB:          0,
		PoolSize:    20,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", address, err)
	}

	log.Printf("Successfully connected to Redis at %s.", address)
	return rdb, nil
}

// CloseRedisClient closes the client if it was opened.
func CloseRedisClient(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
		log.Println("Redis client closed.")
	}
}
