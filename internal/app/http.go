package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/http"
	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Recipe *httpH.RecipeHandler
	User   *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, cfg Config, db *gorm.DB, services Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	var media httpH.MediaURLFunc
	if clients.Images != nil {
		media = clients.Images.PublicURL
	}
	checks := map[string]httpH.PingFunc{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if clients.Cache != nil {
		checks["redis"] = func(ctx context.Context) error {
			return clients.Cache.Client().Ping(ctx).Err()
		}
	}
	return Handlers{
		Health: httpH.NewHealthHandler(checks),
		Recipe: httpH.NewRecipeHandler(log, services.Recipe, services.Relation, services.ShoppingList, media, cfg.RecipesPageSize),
		User:   httpH.NewUserHandler(log, services.Follow, media, cfg.RecipesPageSize),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, clients Clients, handlers Handlers, middleware Middleware) *gin.Engine {
	rc := http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AuthMiddleware: middleware.Auth,
		CORSOrigins:    cfg.CORSOrigins,
		RecipeHandler:  handlers.Recipe,
		UserHandler:    handlers.User,
		HealthHandler:  handlers.Health,
	}
	if cfg.Tracing.Enabled {
		rc.TracingService = serviceName
	}
	if root, ok := objectstore.LocalRoot(clients.Images); ok {
		rc.MediaRoot = root
		rc.MediaPrefix = localMediaPrefix(cfg)
	}
	return http.NewRouter(rc)
}

// localMediaPrefix is the route local images are served from. It only
// differs from /media when PUBLIC_MEDIA_BASE_URL is a path.
func localMediaPrefix(cfg Config) string {
	base := cfg.Storage.PublicBaseURL
	if len(base) > 0 && base[0] == '/' {
		return base
	}
	return "/media"
}
