package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/docexport"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type RecipeHandler struct {
	log       *logger.Logger
	recipes   services.RecipeService
	relations services.RelationService
	shopping  services.ShoppingListService
	media     MediaURLFunc
	pageSize  int
}

func NewRecipeHandler(log *logger.Logger, recipes services.RecipeService, relations services.RelationService, shopping services.ShoppingListService, media MediaURLFunc, pageSize int) *RecipeHandler {
	if pageSize <= 0 {
		pageSize = services.DefaultPageSize
	}
	return &RecipeHandler{
		log:       log.With("handler", "RecipeHandler"),
		recipes:   recipes,
		relations: relations,
		shopping:  shopping,
		media:     media,
		pageSize:  pageSize,
	}
}

// GET /api/recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	q := c.Request.URL.Query()
	filter, err := services.ParseRecipeFilter(q)
	if err != nil {
		respondError(c, h.log, "list_recipes_failed", err)
		return
	}
	page, err := services.ParsePage(q, h.pageSize)
	if err != nil {
		respondError(c, h.log, "list_recipes_failed", err)
		return
	}
	res, err := h.recipes.List(c.Request.Context(), ctxutil.UserID(c.Request.Context()), filter, page)
	if err != nil {
		respondError(c, h.log, "list_recipes_failed", err)
		return
	}
	out := PageResponse[RecipeResponse]{Count: res.Count, Results: make([]RecipeResponse, 0, len(res.Items))}
	for _, v := range res.Items {
		out.Results = append(out.Results, toRecipeResponse(v, h.media))
	}
	out.Next, out.Previous = pageLinks(c.Request.URL, res.Page, res.Count)
	response.RespondOK(c, out)
}

// GET /api/recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	v, err := h.recipes.Get(c.Request.Context(), ctxutil.UserID(c.Request.Context()), id)
	if err != nil {
		respondError(c, h.log, "get_recipe_failed", err)
		return
	}
	response.RespondOK(c, toRecipeResponse(*v, h.media))
}

// POST /api/recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	v, err := h.recipes.Create(c.Request.Context(), ctxutil.UserID(c.Request.Context()), req.toWrite())
	if err != nil {
		respondError(c, h.log, "create_recipe_failed", err)
		return
	}
	c.Header("ETag", strconv.Itoa(v.Recipe.Version))
	response.RespondCreated(c, toRecipeResponse(*v, h.media))
}

// PATCH /api/recipes/:id
// If-Match: <version> turns the update into a compare-and-set.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	expected, err := parseIfMatch(c.GetHeader("If-Match"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	v, err := h.recipes.Update(c.Request.Context(), ctxutil.UserID(c.Request.Context()), id, req.toWrite(), expected)
	if err != nil {
		respondError(c, h.log, "update_recipe_failed", err)
		return
	}
	c.Header("ETag", strconv.Itoa(v.Recipe.Version))
	response.RespondOK(c, toRecipeResponse(*v, h.media))
}

// DELETE /api/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), ctxutil.UserID(c.Request.Context()), id); err != nil {
		respondError(c, h.log, "delete_recipe_failed", err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/recipes/:id/favorite
func (h *RecipeHandler) AddFavorite(c *gin.Context) { h.addRelation(c, types.RelationFavorite) }

// DELETE /api/recipes/:id/favorite
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) { h.removeRelation(c, types.RelationFavorite) }

// POST /api/recipes/:id/shopping_cart
func (h *RecipeHandler) AddToCart(c *gin.Context) { h.addRelation(c, types.RelationCart) }

// DELETE /api/recipes/:id/shopping_cart
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) { h.removeRelation(c, types.RelationCart) }

func (h *RecipeHandler) addRelation(c *gin.Context, kind types.RelationKind) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	sum, err := h.relations.Add(c.Request.Context(), ctxutil.UserID(c.Request.Context()), id, kind)
	if err != nil {
		respondError(c, h.log, "add_"+string(kind)+"_failed", err)
		return
	}
	response.RespondCreated(c, toRecipeSummaryResponse(sum, h.media))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, kind types.RelationKind) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := h.relations.Remove(c.Request.Context(), ctxutil.UserID(c.Request.Context()), id, kind); err != nil {
		respondError(c, h.log, "remove_"+string(kind)+"_failed", err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/recipes/download_shopping_cart?format=pdf|png
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	format, err := docexport.ParseFormat(c.Query("format"))
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_format", "format", err))
		return
	}
	doc, err := h.shopping.Export(c.Request.Context(), ctxutil.UserID(c.Request.Context()), format)
	if err != nil {
		respondError(c, h.log, "export_shopping_list_failed", err)
		return
	}
	response.RespondFile(c, doc.ContentType, doc.Filename, doc.Body)
}

// recipeIDParam answers 404 for ids that cannot name a recipe.
func recipeIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusNotFound, "recipe_not_found", recipes.ErrRecipeNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func parseIfMatch(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return nil, nil
	}
	raw = strings.TrimPrefix(raw, "W/")
	raw = strings.Trim(raw, `"`)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return nil, apierr.BadRequest("invalid_if_match", "If-Match", errors.New("If-Match must carry a recipe version"))
	}
	return &v, nil
}
