package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/foodgram-backend/internal/docexport"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
	"github.com/yungbote/foodgram-backend/internal/platform/redis"
)

type Clients struct {
	Cache    redis.Cache
	Images   objectstore.Store
	Exporter *docexport.Exporter
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis (optional shared cache tier)
	var cache redis.Cache
	if strings.TrimSpace(cfg.Cache.RedisAddr) != "" {
		c, err := redis.NewCache(log, cfg.Cache.RedisAddr, cfg.Cache.RedisPrefix)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		cache = c
		metrics.StartRedisCollector(ctx, log, c.Client(), 0)
	}

	// Recipe images
	images, err := objectstore.New(ctx, log, cfg.ObjectStoreConfig())
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return Clients{}, fmt.Errorf("init object store: %w", err)
	}

	// Shopping list renderer
	exporter, err := docexport.New(cfg.ExportFontPath)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return Clients{}, fmt.Errorf("init document exporter: %w", err)
	}

	return Clients{
		Cache:    cache,
		Images:   images,
		Exporter: exporter,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if closer, ok := c.Images.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
