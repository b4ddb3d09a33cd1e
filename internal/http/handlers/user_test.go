package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/services"
)

func newUserRouter(follows *stubFollows) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(logger.Nop(), follows, testMedia, 0)
	r := gin.New()
	r.Use(asUser(uuid.New()))
	r.GET("/api/users/subscriptions", h.ListSubscriptions)
	r.POST("/api/users/:id/subscribe", h.Subscribe)
	r.DELETE("/api/users/:id/subscribe", h.Unsubscribe)
	return r
}

func sampleSummary() *services.SubscriptionSummary {
	return &services.SubscriptionSummary{
		Author:       &types.User{ID: uuid.New(), Username: "chef"},
		IsSubscribed: true,
		Recipes:      []types.RecipeSummary{{ID: uuid.New(), Name: "Pie", ImageKey: "p.png"}},
		RecipesCount: 9,
	}
}

func TestSubscribe(t *testing.T) {
	follows := &stubFollows{sum: sampleSummary()}
	r := newUserRouter(follows)

	rec := do(r, http.MethodPost, "/api/users/"+uuid.NewString()+"/subscribe?recipes_limit=2", "", nil)
	if rec.Code != http.StatusCreated || follows.limit == nil || *follows.limit != 2 {
		t.Fatalf("status=%d limit=%v", rec.Code, follows.limit)
	}
	var body SubscriptionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.IsSubscribed || body.RecipesCount != 9 || body.Username != "chef" || body.Recipes[0].Image != "/media/p.png" {
		t.Fatalf("body: %+v", body)
	}

	rec = do(r, http.MethodPost, "/api/users/"+uuid.NewString()+"/subscribe?recipes_limit=x", "", nil)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Code != "invalid_recipes_limit" {
		t.Fatalf("bad limit: %d %s", rec.Code, rec.Body.String())
	}

	follows.err = domainagg.NewError(domainagg.CodeValidation, "op", user.ErrSelfFollowNotAllowed.Error(), user.ErrSelfFollowNotAllowed)
	rec = do(r, http.MethodPost, "/api/users/"+uuid.NewString()+"/subscribe", "", nil)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Code != "self_follow_not_allowed" {
		t.Fatalf("self follow: %d %s", rec.Code, rec.Body.String())
	}

	follows.err = domainagg.NewError(domainagg.CodeNotFound, "op", user.ErrUserNotFound.Error(), user.ErrUserNotFound)
	rec = do(r, http.MethodPost, "/api/users/"+uuid.NewString()+"/subscribe", "", nil)
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Code != "user_not_found" {
		t.Fatalf("unknown user: %d %s", rec.Code, rec.Body.String())
	}

	// unsubscribing from an unknown id is the same as not following it
	follows.err = domainagg.NewError(domainagg.CodeNotFound, "op", user.ErrNotFollowing.Error(), user.ErrNotFollowing)
	rec = do(r, http.MethodDelete, "/api/users/"+uuid.NewString()+"/subscribe", "", nil)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Code != "not_following" {
		t.Fatalf("unfollow absent pair: %d %s", rec.Code, rec.Body.String())
	}
}

func TestListSubscriptions(t *testing.T) {
	follows := &stubFollows{sum: sampleSummary()}
	r := newUserRouter(follows)

	rec := do(r, http.MethodGet, "/api/users/subscriptions?recipes_limit=-4", "", nil)
	if rec.Code != http.StatusOK || follows.limit == nil || *follows.limit != 0 {
		t.Fatalf("status=%d limit=%v", rec.Code, follows.limit)
	}
	var body PageResponse[SubscriptionResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || len(body.Results) != 1 || body.Next != nil || body.Previous != nil {
		t.Fatalf("envelope: %+v", body)
	}
}
