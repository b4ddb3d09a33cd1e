package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/domain/user"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type UserHandler struct {
	log      *logger.Logger
	follows  services.FollowService
	media    MediaURLFunc
	pageSize int
}

func NewUserHandler(log *logger.Logger, follows services.FollowService, media MediaURLFunc, pageSize int) *UserHandler {
	if pageSize <= 0 {
		pageSize = services.DefaultPageSize
	}
	return &UserHandler{
		log:      log.With("handler", "UserHandler"),
		follows:  follows,
		media:    media,
		pageSize: pageSize,
	}
}

// POST /api/users/:id/subscribe?recipes_limit=N
func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, ok := userIDParam(c)
	if !ok {
		return
	}
	limit, err := parseRecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sum, err := h.follows.Subscribe(c.Request.Context(), ctxutil.UserID(c.Request.Context()), authorID, limit)
	if err != nil {
		respondError(c, h.log, "subscribe_failed", err)
		return
	}
	response.RespondCreated(c, toSubscriptionResponse(*sum, h.media))
}

// DELETE /api/users/:id/subscribe
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.follows.Unsubscribe(c.Request.Context(), ctxutil.UserID(c.Request.Context()), authorID); err != nil {
		respondError(c, h.log, "unsubscribe_failed", err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/users/subscriptions?page=&limit=&recipes_limit=
func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := services.ParsePage(q, h.pageSize)
	if err != nil {
		respondError(c, h.log, "list_subscriptions_failed", err)
		return
	}
	limit, err := parseRecipesLimit(q.Get("recipes_limit"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	res, err := h.follows.ListSubscriptions(c.Request.Context(), ctxutil.UserID(c.Request.Context()), limit, page)
	if err != nil {
		respondError(c, h.log, "list_subscriptions_failed", err)
		return
	}
	out := PageResponse[SubscriptionResponse]{Count: res.Count, Results: make([]SubscriptionResponse, 0, len(res.Items))}
	for _, s := range res.Items {
		out.Results = append(out.Results, toSubscriptionResponse(s, h.media))
	}
	out.Next, out.Previous = pageLinks(c.Request.URL, res.Page, res.Count)
	response.RespondOK(c, out)
}

func userIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusNotFound, "user_not_found", user.ErrUserNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// parseRecipesLimit returns nil when absent; negatives clamp to zero.
func parseRecipesLimit(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apierr.BadRequest("invalid_recipes_limit", "recipes_limit", err)
	}
	if n < 0 {
		n = 0
	}
	return &n, nil
}
