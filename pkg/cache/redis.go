package cache

import (
	"context"
	"fmt"
	"time"

	"pet-rental/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the shared redis client used for one-time codes and
// rate limiting. State lives here rather than in-process so it survives
// multi-instance deployment.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
