package bootstrap

import (
	"context"
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/config"
	"github.com/jonesrussell/keyword-monitor/internal/events"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/redis/go-redis/v9"
)

const redisConnectTimeout = 5 * time.Second

// SetupEventPublisher creates an optional event publisher when Redis is
// enabled. Returns a nil publisher (safe to call) and a nil ping func
// when Redis is disabled or unreachable; the service runs without events.
func SetupEventPublisher(cfg *config.Config, log logger.Logger) (*events.Publisher, func() error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not available, events disabled",
			logger.String("redis_address", cfg.Redis.Address),
			logger.Error(err),
		)
		_ = client.Close()
		return nil, nil
	}

	log.Info("Event publisher initialized",
		logger.String("redis_address", cfg.Redis.Address),
	)

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}
	return events.NewPublisher(client, log), ping
}
