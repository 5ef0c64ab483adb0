package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const clientName = "auth-service"

// Connect builds the client the rate-limit store runs on. Deployed configs
// pass a redis:// URL; local runs can use a bare host:port.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	opt := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	}
	opt.ClientName = clientName
	return redis.NewClient(opt), nil
}
