package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type errorRule struct {
	target error
	status int
	code   string
	field  string
}

var errorRules = []errorRule{
	{recipes.ErrEmptyIngredients, http.StatusBadRequest, "empty_ingredients", "ingredients"},
	{recipes.ErrDuplicateIngredient, http.StatusBadRequest, "duplicate_ingredient", "ingredients"},
	{recipes.ErrUnknownIngredient, http.StatusBadRequest, "unknown_ingredient", "ingredients"},
	{recipes.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount", "ingredients"},
	{recipes.ErrInvalidName, http.StatusBadRequest, "invalid_name", "name"},
	{recipes.ErrInvalidCookingTime, http.StatusBadRequest, "invalid_cooking_time", "cooking_time"},
	{recipes.ErrInvalidText, http.StatusBadRequest, "invalid_text", "text"},
	{recipes.ErrUnknownTag, http.StatusBadRequest, "unknown_tag", "tags"},
	{recipes.ErrInvalidImage, http.StatusBadRequest, "invalid_image", "image"},

	{recipes.ErrAlreadyExists, http.StatusBadRequest, "already_exists", ""},
	{recipes.ErrRelationNotFound, http.StatusBadRequest, "relation_not_found", ""},
	{user.ErrNotFollowing, http.StatusBadRequest, "not_following", ""},
	{user.ErrSelfFollowNotAllowed, http.StatusBadRequest, "self_follow_not_allowed", ""},
	{user.ErrAlreadyFollowing, http.StatusBadRequest, "already_following", ""},
	{recipes.ErrInvalidFilter, http.StatusBadRequest, "invalid_filter", ""},

	{recipes.ErrRecipeNotFound, http.StatusNotFound, "recipe_not_found", ""},
	{user.ErrUserNotFound, http.StatusNotFound, "user_not_found", ""},

	{recipes.ErrNotRecipeAuthor, http.StatusForbidden, "not_recipe_author", ""},
	{recipes.ErrVersionConflict, http.StatusConflict, "version_conflict", ""},
}

var codeStatus = map[domainagg.ErrorCode]int{
	domainagg.CodeValidation:         http.StatusBadRequest,
	domainagg.CodeNotFound:           http.StatusNotFound,
	domainagg.CodeForbidden:          http.StatusForbidden,
	domainagg.CodeConflict:           http.StatusConflict,
	domainagg.CodePreconditionFailed: http.StatusPreconditionFailed,
}

// mapError translates a service error into the status, code and field the
// client sees. fallbackCode names the failed operation for unexpected errors.
func mapError(err error, fallbackCode string) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	for _, r := range errorRules {
		if errors.Is(err, r.target) {
			return &apierr.Error{Status: r.status, Code: r.code, Field: r.field, Err: errors.New(clientMessage(err))}
		}
	}
	code := domainagg.CodeOf(err)
	if status, ok := codeStatus[code]; ok {
		return apierr.New(status, string(code), errors.New(clientMessage(err)))
	}
	return apierr.New(http.StatusInternalServerError, fallbackCode, errors.New("internal server error"))
}

// clientMessage strips the aggregate operation prefix so clients see only
// the domain message.
func clientMessage(err error) string {
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) && aggErr.Message != "" {
		return aggErr.Message
	}
	return err.Error()
}

func respondError(c *gin.Context, log *logger.Logger, fallbackCode string, err error) {
	ae := mapError(err, fallbackCode)
	if ae.Status >= http.StatusInternalServerError && log != nil {
		fields := []interface{}{"error", err, "code", fallbackCode, "path", c.FullPath()}
		fields = append(fields, ctxutil.LogFields(c.Request.Context())...)
		log.Error("request failed", fields...)
	}
	response.RespondAPIError(c, ae)
}
