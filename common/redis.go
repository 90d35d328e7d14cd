package common

import (
	"context"
	"os"
	"time"

	"github.com/contributory/ai-gateway/common/logger"
	"github.com/go-redis/redis/v8"
)

var RDB *redis.Client
var RedisEnabled = false

// InitRedisClient connects to REDIS_CONN_STRING. Redis only backs the model
// catalogue cache, so a missing connection string simply disables it.
func InitRedisClient() (err error) {
	if os.Getenv("REDIS_CONN_STRING") == "" {
		logger.SysLog("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil
	}
	logger.SysLog("Redis is enabled")
	opt, err := redis.ParseURL(os.Getenv("REDIS_CONN_STRING"))
	if err != nil {
		logger.FatalLog("failed to parse Redis connection string: " + err.Error())
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = RDB.Ping(ctx).Result()
	if err != nil {
		logger.FatalLog("Redis ping test failed: " + err.Error())
	}
	RedisEnabled = true
	return err
}

func RedisSet(ctx context.Context, key string, value string, expiration time.Duration) error {
	return RDB.Set(ctx, key, value, expiration).Err()
}

func RedisGet(ctx context.Context, key string) (string, error) {
	return RDB.Get(ctx, key).Result()
}

func RedisDel(ctx context.Context, key string) error {
	return RDB.Del(ctx, key).Err()
}
