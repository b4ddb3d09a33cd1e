package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/recipes", "200", time.Millisecond)
	m.ObserveAggregateOperation("op", "success", time.Millisecond)
	m.IncAggregateConflict("op")
	m.ObserveExport("pdf", "success", time.Millisecond)
	m.ObserveCacheLookup("lru", "hit")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil metrics handler: want 503 got %d", rec.Code)
	}
}

func TestMetricsHandlerExposesSeries(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/recipes", "201", 20*time.Millisecond)
	m.ObserveAggregateOperation("Recipes.Recipe.Create", "success", 5*time.Millisecond)
	m.IncAggregateConflict("Recipes.Cart.Add")
	m.ObserveCacheLookup("lru", "miss")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`foodgram_api_requests_total{method="POST",route="/api/recipes",status="201"} 1`,
		`foodgram_aggregate_conflicts_total{operation="Recipes.Cart.Add"} 1`,
		`foodgram_ingredient_cache_lookups_total{result="miss",tier="lru"} 1`,
		`foodgram_aggregate_operation_duration_seconds_count{operation="Recipes.Recipe.Create",status="success"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing series %q in:\n%s", want, body)
		}
	}
}
