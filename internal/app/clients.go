package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/wardrobe-backend/internal/clients/redis"
	"github.com/yungbote/wardrobe-backend/internal/platform/gcp"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type Clients struct {
	// Nil when REDIS_ADDR is unset.
	Redis *goredis.Client
	// Nil when OBJECT_STORAGE_MODE is unset.
	Images gcp.ImageBucket
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var rdb *goredis.Client
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		c, err := redis.NewClient(cfg.Redis, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis client: %w", err)
		}
		rdb = c
	}
	images, err := resolveImageBucket(context.Background(), log, cfg)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return Clients{}, err
	}
	return Clients{Redis: rdb, Images: images}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
