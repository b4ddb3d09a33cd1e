package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/docexport"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type stubRecipes struct {
	listFilter services.RecipeFilter
	listPage   services.Page
	listViewer uuid.UUID
	view       *services.RecipeView
	write      services.RecipeWrite
	expected   *int
	err        error
}

func (s *stubRecipes) List(_ context.Context, viewerID uuid.UUID, f services.RecipeFilter, p services.Page) (services.RecipePage, error) {
	s.listViewer, s.listFilter, s.listPage = viewerID, f, p
	if s.err != nil {
		return services.RecipePage{}, s.err
	}
	return services.RecipePage{Items: []services.RecipeView{*s.view}, Count: 7, Page: p}, nil
}

func (s *stubRecipes) Get(context.Context, uuid.UUID, uuid.UUID) (*services.RecipeView, error) {
	return s.view, s.err
}

func (s *stubRecipes) Create(_ context.Context, _ uuid.UUID, in services.RecipeWrite) (*services.RecipeView, error) {
	s.write = in
	return s.view, s.err
}

func (s *stubRecipes) Update(_ context.Context, _, _ uuid.UUID, in services.RecipeWrite, expected *int) (*services.RecipeView, error) {
	s.write, s.expected = in, expected
	return s.view, s.err
}

func (s *stubRecipes) Delete(context.Context, uuid.UUID, uuid.UUID) error { return s.err }

type stubRelations struct {
	kind types.RelationKind
	err  error
}

func (s *stubRelations) Add(_ context.Context, _, recipeID uuid.UUID, kind types.RelationKind) (types.RecipeSummary, error) {
	s.kind = kind
	return types.RecipeSummary{ID: recipeID, Name: "Soup", ImageKey: "k.png", CookingTime: 3}, s.err
}

func (s *stubRelations) Remove(_ context.Context, _, _ uuid.UUID, kind types.RelationKind) error {
	s.kind = kind
	return s.err
}

type stubShopping struct {
	format docexport.Format
}

func (s *stubShopping) Aggregate(context.Context, uuid.UUID) (types.ShoppingList, error) {
	return types.ShoppingList{}, nil
}

func (s *stubShopping) Export(_ context.Context, _ uuid.UUID, f docexport.Format) (services.ExportedDocument, error) {
	s.format = f
	return services.ExportedDocument{Body: []byte("%PDF-1.3"), ContentType: f.ContentType(), Filename: f.Filename()}, nil
}

type stubFollows struct {
	limit *int
	err   error
	sum   *services.SubscriptionSummary
}

func (s *stubFollows) Subscribe(_ context.Context, _, _ uuid.UUID, limit *int) (*services.SubscriptionSummary, error) {
	s.limit = limit
	return s.sum, s.err
}

func (s *stubFollows) Unsubscribe(context.Context, uuid.UUID, uuid.UUID) error { return s.err }

func (s *stubFollows) SubscriptionSummary(_ context.Context, _, _ uuid.UUID, limit *int) (*services.SubscriptionSummary, error) {
	s.limit = limit
	return s.sum, s.err
}

func (s *stubFollows) ListSubscriptions(_ context.Context, _ uuid.UUID, limit *int, p services.Page) (services.SubscriptionPage, error) {
	s.limit = limit
	return services.SubscriptionPage{Items: []services.SubscriptionSummary{*s.sum}, Count: 1, Page: p}, s.err
}

func testMedia(key string) string { return "/media/" + key }

func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != uuid.Nil {
			c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: id}))
		}
		c.Next()
	}
}

func sampleView() *services.RecipeView {
	author := &types.User{ID: uuid.New(), Email: "a@x.io", Username: "chef", FirstName: "A", LastName: "B"}
	ing := &types.Ingredient{ID: uuid.New(), Name: "Salt", MeasurementUnit: "g"}
	return &services.RecipeView{
		Recipe: &types.Recipe{
			ID:          uuid.New(),
			AuthorID:    author.ID,
			Name:        "Soup",
			Text:        "Boil.",
			CookingTime: 30,
			ImageKey:    "recipes/images/a.png",
			Version:     4,
			Lines:       []*types.IngredientLine{{IngredientID: ing.ID, Amount: 5, Ingredient: ing}},
			Tags:        []*types.Tag{{ID: uuid.New(), Name: "Lunch", Slug: "lunch", Color: "#fff"}},
		},
		Author:           author,
		AuthorSubscribed: true,
		IsFavorited:      true,
	}
}

func newRecipeRouter(viewer uuid.UUID, recipes *stubRecipes, relations *stubRelations, shopping *stubShopping) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRecipeHandler(logger.Nop(), recipes, relations, shopping, testMedia, 0)
	r := gin.New()
	r.Use(asUser(viewer))
	r.GET("/api/recipes", h.ListRecipes)
	r.GET("/api/recipes/download_shopping_cart", h.DownloadShoppingCart)
	r.GET("/api/recipes/:id", h.GetRecipe)
	r.POST("/api/recipes", h.CreateRecipe)
	r.PATCH("/api/recipes/:id", h.UpdateRecipe)
	r.DELETE("/api/recipes/:id", h.DeleteRecipe)
	r.POST("/api/recipes/:id/favorite", h.AddFavorite)
	r.DELETE("/api/recipes/:id/shopping_cart", h.RemoveFromCart)
	return r
}

func do(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.APIError {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	return env.Error
}
