package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/services"
)

func TestRouterWiring(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	auth, err := services.NewAuthService(log, "secret")
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	media := t.TempDir()
	if err := os.MkdirAll(filepath.Join(media, "recipes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(media, "recipes", "a.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(RouterConfig{
		Log:            log,
		Metrics:        observability.NewMetrics(),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, auth),
		MediaRoot:      media,
		RecipeHandler:  httpH.NewRecipeHandler(log, nil, nil, nil, nil, 0),
		UserHandler:    httpH.NewUserHandler(log, nil, nil, 0),
		HealthHandler: httpH.NewHealthHandler(map[string]httpH.PingFunc{
			"db": func(context.Context) error { return nil },
		}),
	})

	cases := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/healthcheck", http.StatusOK, `"db":"ok"`},
		{http.MethodPost, "/api/recipes", http.StatusUnauthorized, "unauthorized"},
		{http.MethodGet, "/api/recipes/download_shopping_cart", http.StatusUnauthorized, "unauthorized"},
		{http.MethodGet, "/api/users/subscriptions", http.StatusUnauthorized, "unauthorized"},
		{http.MethodGet, "/api/recipes", http.StatusUnauthorized, "unauthorized"},
		{http.MethodGet, "/media/recipes/a.png", http.StatusOK, "png"},
		{http.MethodGet, "/metrics", http.StatusOK, "foodgram_api_requests_total"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.path == "/api/recipes" && tc.method == http.MethodGet {
				req.Header.Set("Authorization", "Bearer broken")
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.body) {
				t.Fatalf("body %q does not contain %q", rec.Body.String(), tc.body)
			}
		})
	}
}

func TestHealthCheckReportsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{
		HealthHandler: httpH.NewHealthHandler(map[string]httpH.PingFunc{
			"redis": func(context.Context) error { return errors.New("down") },
		}),
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "down") {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}
