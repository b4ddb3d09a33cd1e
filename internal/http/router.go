package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const (
	healthPath  = "/healthcheck"
	metricsPath = "/metrics"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AuthMiddleware *httpMW.AuthMiddleware
	CORSOrigins    []string

	// TracingService enables otelgin spans under that service name.
	TracingService string
	// MediaRoot is served at MediaPrefix when images live on local disk.
	MediaRoot   string
	MediaPrefix string

	RecipeHandler *httpH.RecipeHandler
	UserHandler   *httpH.UserHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, healthPath, metricsPath))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsPath))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET(healthPath, cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.MediaRoot != "" {
		prefix := cfg.MediaPrefix
		if prefix == "" {
			prefix = "/media"
		}
		r.StaticFS(prefix, gin.Dir(cfg.MediaRoot, false))
	}

	optional := func(c *gin.Context) { c.Next() }
	required := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	if cfg.AuthMiddleware != nil {
		optional = cfg.AuthMiddleware.OptionalAuth()
		required = cfg.AuthMiddleware.RequireAuth()
	}

	api := r.Group("/api")

	// Recipes
	if h := cfg.RecipeHandler; h != nil {
		api.GET("/recipes", optional, h.ListRecipes)
		api.GET("/recipes/download_shopping_cart", required, h.DownloadShoppingCart)
		api.GET("/recipes/:id", optional, h.GetRecipe)
		api.POST("/recipes", required, h.CreateRecipe)
		api.PATCH("/recipes/:id", required, h.UpdateRecipe)
		api.DELETE("/recipes/:id", required, h.DeleteRecipe)
		api.POST("/recipes/:id/favorite", required, h.AddFavorite)
		api.DELETE("/recipes/:id/favorite", required, h.RemoveFavorite)
		api.POST("/recipes/:id/shopping_cart", required, h.AddToCart)
		api.DELETE("/recipes/:id/shopping_cart", required, h.RemoveFromCart)
	}

	// Subscriptions
	if h := cfg.UserHandler; h != nil {
		api.GET("/users/subscriptions", required, h.ListSubscriptions)
		api.POST("/users/:id/subscribe", required, h.Subscribe)
		api.DELETE("/users/:id/subscribe", required, h.Unsubscribe)
	}

	return r
}
