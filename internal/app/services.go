package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type Aggregates struct {
	Recipe   domainagg.RecipeAggregate
	Relation domainagg.UserRecipeRelationAggregate
	Follow   domainagg.FollowAggregate
}

type Services struct {
	Auth         services.AuthService
	Catalog      services.IngredientCatalog
	Recipe       services.RecipeService
	Relation     services.RelationService
	Follow       services.FollowService
	ShoppingList services.ShoppingListService
}

func wireAggregates(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, repos Repos, catalog services.IngredientCatalog) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}
	return Aggregates{
		Recipe: aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
			Base:        base,
			Recipes:     repos.Recipe,
			Lines:       repos.IngredientLine,
			RecipeTags:  repos.RecipeTag,
			Tags:        repos.Tag,
			Relations:   repos.UserRecipeRelation,
			Ingredients: repos.Ingredient,
			Catalog:     catalog,
		}),
		Relation: aggregates.NewUserRecipeRelationAggregate(aggregates.UserRecipeRelationAggregateDeps{
			Base:      base,
			Recipes:   repos.Recipe,
			Relations: repos.UserRecipeRelation,
		}),
		Follow: aggregates.NewFollowAggregate(aggregates.FollowAggregateDeps{
			Base:    base,
			Users:   repos.User,
			Follows: repos.Follow,
		}),
	}
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, repos Repos, clients Clients) (Services, Aggregates, error) {
	log.Info("Wiring services...")

	auth, err := services.NewAuthService(log, cfg.JWTSecretKey)
	if err != nil {
		return Services{}, Aggregates{}, fmt.Errorf("init auth service: %w", err)
	}
	catalog, err := services.NewIngredientCatalog(log, repos.Ingredient, clients.Cache, metrics, services.CatalogConfig{
		LRUSize:  cfg.Cache.IngredientSize,
		RedisTTL: cfg.Cache.IngredientTTL,
	})
	if err != nil {
		return Services{}, Aggregates{}, fmt.Errorf("init ingredient catalog: %w", err)
	}

	aggs := wireAggregates(db, log, metrics, repos, catalog)

	return Services{
		Auth:    auth,
		Catalog: catalog,
		Recipe: services.NewRecipeService(log, services.RecipeServiceDeps{
			Aggregate: aggs.Recipe,
			Recipes:   repos.Recipe,
			Lines:     repos.IngredientLine,
			Tags:      repos.Tag,
			Relations: repos.UserRecipeRelation,
			Users:     repos.User,
			Follows:   repos.Follow,
			Images:    clients.Images,
		}),
		Relation:     services.NewRelationService(log, aggs.Relation),
		Follow:       services.NewFollowService(log, aggs.Follow, repos.User, repos.Follow, repos.Recipe),
		ShoppingList: services.NewShoppingListService(log, repos.IngredientLine, clients.Exporter, metrics),
	}, aggs, nil
}
