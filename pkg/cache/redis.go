package cache

import (
	"context"
	"fmt"
	"time"

	"car-rental/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the shared redis client used for response caching and
// rate limiting.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
