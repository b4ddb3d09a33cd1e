package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/redis"
)

// IngredientCatalog resolves ingredient ids. Ingredients never change once
// loaded, so both cache tiers are read-through with no invalidation.
type IngredientCatalog interface {
	// GetByIDs returns the known ingredients keyed by id; unknown ids are
	// simply absent.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*types.Ingredient, error)
}

type CatalogConfig struct {
	LRUSize  int
	RedisTTL time.Duration
}

type ingredientCatalog struct {
	log     *logger.Logger
	repo    repos.IngredientRepo
	lru     *lru.Cache
	shared  redis.Cache
	ttl     time.Duration
	metrics *observability.Metrics
}

// NewIngredientCatalog wires the repo behind an in-process LRU and, when
// shared is non-nil, a redis tier.
func NewIngredientCatalog(log *logger.Logger, repo repos.IngredientRepo, shared redis.Cache, metrics *observability.Metrics, cfg CatalogConfig) (IngredientCatalog, error) {
	if repo == nil {
		return nil, fmt.Errorf("ingredient repo required")
	}
	size := cfg.LRUSize
	if size <= 0 {
		size = 4096
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create ingredient lru: %w", err)
	}
	ttl := cfg.RedisTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ingredientCatalog{
		log:     log.With("service", "IngredientCatalog"),
		repo:    repo,
		lru:     cache,
		shared:  shared,
		ttl:     ttl,
		metrics: metrics,
	}, nil
}

func (c *ingredientCatalog) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*types.Ingredient, error) {
	out := make(map[uuid.UUID]*types.Ingredient, len(ids))
	var missing []uuid.UUID
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if v, ok := c.lru.Get(id); ok {
			c.metrics.ObserveCacheLookup("lru", "hit")
			out[id] = cloneIngredient(v.(*types.Ingredient))
			continue
		}
		c.metrics.ObserveCacheLookup("lru", "miss")
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	if c.shared != nil {
		still := missing[:0:0]
		for _, id := range missing {
			var ing types.Ingredient
			ok, err := c.shared.GetJSON(ctx, ingredientCacheKey(id), &ing)
			if err != nil {
				// redis is an optimisation only
				c.log.Warn("ingredient cache read failed", "ingredient_id", id, "error", err)
				still = append(still, id)
				continue
			}
			if !ok || ing.ID != id {
				c.metrics.ObserveCacheLookup("redis", "miss")
				still = append(still, id)
				continue
			}
			c.metrics.ObserveCacheLookup("redis", "hit")
			c.lru.Add(id, cloneIngredient(&ing))
			out[id] = &ing
		}
		missing = still
	}
	if len(missing) == 0 {
		return out, nil
	}

	rows, err := c.repo.GetByIDs(dbctx.Context{Ctx: ctx}, missing)
	if err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	for _, row := range rows {
		if row == nil {
			continue
		}
		c.lru.Add(row.ID, cloneIngredient(row))
		if c.shared != nil {
			if err := c.shared.SetJSON(ctx, ingredientCacheKey(row.ID), row, c.ttl); err != nil {
				c.log.Warn("ingredient cache write failed", "ingredient_id", row.ID, "error", err)
			}
		}
		out[row.ID] = row
	}
	return out, nil
}

func ingredientCacheKey(id uuid.UUID) string {
	return "ingredient:" + id.String()
}

// Callers get their own copy so cached entries stay immutable.
func cloneIngredient(in *types.Ingredient) *types.Ingredient {
	if in == nil {
		return nil
	}
	cp := *in
	return &cp
}
