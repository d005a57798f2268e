package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *goredis.Client

// InitRedis connects the shared client and verifies it with a PING.
func InitRedis(redisAddress string, redisUsername string, redisPassword string) (*goredis.Client, error) {
	Rdb = goredis.NewClient(&goredis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", redisAddress, err)
	}

	log.Info().Str("address", redisAddress).Msg("connected to redis")
	return Rdb, nil
}
