package database

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"community-service/config"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the single live refresh token per user id. Renewing a
// token rotates the stored value, which invalidates the old refresh token.
type SessionStore interface {
	SetRefreshToken(ctx context.Context, userId string, token string) error
	GetRefreshToken(ctx context.Context, userId string) (string, error)
}

// RedisSessions is the production SessionStore.
type RedisSessions struct {
	Client *redis.Client
}

func RedisConnect() *RedisSessions {
	dbNumber, _ := strconv.Atoi(config.Config("REDIS_DB"))

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf(
			"%s:%s",
			config.Config("REDIS_HOST"),
			config.Config("REDIS_PORT"),
		),
		Password: config.Config("REDIS_PASSWORD"),
		DB:       dbNumber,
	})

	log.Printf("Connection opened to Redis")
	return &RedisSessions{Client: client}
}

func (s *RedisSessions) SetRefreshToken(ctx context.Context, userId string, token string) error {
	return s.Client.Set(ctx, userId, token, 0).Err()
}

func (s *RedisSessions) GetRefreshToken(ctx context.Context, userId string) (string, error) {
	return s.Client.Get(ctx, userId).Result()
}
