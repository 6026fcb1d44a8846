package database

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/gymbrah/GymBrah-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis initialise le client Redis (cache du leaderboard).
// Un échec de ping n'est pas fatal : le cache est optionnel.
func ConnectRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = client.Ping(ctx).Err()

	Redis = client

	return client
}
