package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/docexport"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

func TestListRecipesParsesFilterAndPage(t *testing.T) {
	viewer := uuid.New()
	author := uuid.New()
	stub := &stubRecipes{view: sampleView()}
	r := newRecipeRouter(viewer, stub, &stubRelations{}, &stubShopping{})

	rec := do(r, http.MethodGet, fmt.Sprintf("/api/recipes?tags=lunch&tags=dinner&author=%s&is_favorited=1&page=2&limit=3", author), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if stub.listViewer != viewer || stub.listFilter.AuthorID != author || !stub.listFilter.IsFavorited || len(stub.listFilter.TagSlugs) != 2 {
		t.Fatalf("filter not passed through: %+v", stub.listFilter)
	}
	if stub.listPage.Page != 2 || stub.listPage.Limit != 3 {
		t.Fatalf("page: %+v", stub.listPage)
	}

	var body PageResponse[RecipeResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 7 || len(body.Results) != 1 || body.Next == nil || body.Previous == nil {
		t.Fatalf("envelope: %+v", body)
	}
	got := body.Results[0]
	if got.Image != "/media/recipes/images/a.png" || !got.IsFavorited || got.Author == nil || !got.Author.IsSubscribed {
		t.Fatalf("mapped recipe: %+v", got)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "Salt" || got.Ingredients[0].Amount != 5 {
		t.Fatalf("ingredients: %+v", got.Ingredients)
	}
}

func TestListRecipesRejectsBadFlag(t *testing.T) {
	r := newRecipeRouter(uuid.Nil, &stubRecipes{view: sampleView()}, &stubRelations{}, &stubShopping{})
	rec := do(r, http.MethodGet, "/api/recipes?is_in_shopping_cart=yes", "", nil)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Code != "invalid_filter" {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateRecipeMapsBodyAndErrors(t *testing.T) {
	ingID := uuid.New()
	tagID := uuid.New()
	stub := &stubRecipes{view: sampleView()}
	r := newRecipeRouter(uuid.New(), stub, &stubRelations{}, &stubShopping{})

	body := fmt.Sprintf(`{"name":"Soup","text":"Boil.","cooking_time":30,"image":"data:image/png;base64,AAAA","tags":["%s"],"ingredients":[{"id":"%s","amount":5}]}`, tagID, ingID)
	rec := do(r, http.MethodPost, "/api/recipes", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("ETag") != "4" {
		t.Fatalf("etag: %q", rec.Header().Get("ETag"))
	}
	w := stub.write
	if w.Name == nil || *w.Name != "Soup" || len(w.Lines) != 1 || w.Lines[0].IngredientID != ingID || len(w.TagIDs) != 1 {
		t.Fatalf("write not mapped: %+v", w)
	}

	cases := []struct {
		err    error
		status int
		code   string
		field  string
	}{
		{domainagg.NewError(domainagg.CodeValidation, "op", recipes.ErrEmptyIngredients.Error(), recipes.ErrEmptyIngredients), http.StatusBadRequest, "empty_ingredients", "ingredients"},
		{domainagg.NewError(domainagg.CodeValidation, "op", "unknown ingredient: x", fmt.Errorf("%w: x", recipes.ErrUnknownIngredient)), http.StatusBadRequest, "unknown_ingredient", "ingredients"},
		{domainagg.NewError(domainagg.CodeValidation, "op", "bad", recipes.ErrInvalidImage), http.StatusBadRequest, "invalid_image", "image"},
		{domainagg.NewError(domainagg.CodeValidation, "op", "bad", recipes.ErrInvalidText), http.StatusBadRequest, "invalid_text", "text"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "create_recipe_failed", ""},
	}
	for _, tc := range cases {
		stub.err = tc.err
		rec := do(r, http.MethodPost, "/api/recipes", body, nil)
		got := decodeError(t, rec)
		if rec.Code != tc.status || got.Code != tc.code || got.Field != tc.field {
			t.Fatalf("%v: status=%d error=%+v", tc.err, rec.Code, got)
		}
	}
}

func TestUpdateRecipeIfMatch(t *testing.T) {
	stub := &stubRecipes{view: sampleView()}
	r := newRecipeRouter(uuid.New(), stub, &stubRelations{}, &stubShopping{})
	target := "/api/recipes/" + uuid.NewString()
	body := `{"ingredients":[{"id":"` + uuid.NewString() + `","amount":1}]}`

	rec := do(r, http.MethodPatch, target, body, map[string]string{"If-Match": `W/"3"`})
	if rec.Code != http.StatusOK || stub.expected == nil || *stub.expected != 3 {
		t.Fatalf("status=%d expected=%v", rec.Code, stub.expected)
	}
	if stub.write.Name != nil {
		t.Fatalf("absent name should stay nil")
	}

	rec = do(r, http.MethodPatch, target, body, nil)
	if rec.Code != http.StatusOK || stub.expected != nil {
		t.Fatalf("no If-Match should mean last write wins")
	}

	rec = do(r, http.MethodPatch, target, body, map[string]string{"If-Match": "abc"})
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Code != "invalid_if_match" {
		t.Fatalf("bad If-Match: %d %s", rec.Code, rec.Body.String())
	}

	stub.err = domainagg.NewError(domainagg.CodeConflict, "op", recipes.ErrVersionConflict.Error(), recipes.ErrVersionConflict)
	rec = do(r, http.MethodPatch, target, body, map[string]string{"If-Match": "3"})
	if rec.Code != http.StatusConflict || decodeError(t, rec).Code != "version_conflict" {
		t.Fatalf("conflict: %d %s", rec.Code, rec.Body.String())
	}

	stub.err = domainagg.NewError(domainagg.CodeForbidden, "op", recipes.ErrNotRecipeAuthor.Error(), recipes.ErrNotRecipeAuthor)
	rec = do(r, http.MethodDelete, target, "", nil)
	if rec.Code != http.StatusForbidden || decodeError(t, rec).Code != "not_recipe_author" {
		t.Fatalf("forbidden: %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	stub := &stubRecipes{err: recipes.ErrRecipeNotFound}
	r := newRecipeRouter(uuid.Nil, stub, &stubRelations{}, &stubShopping{})
	for _, target := range []string{"/api/recipes/" + uuid.NewString(), "/api/recipes/not-a-uuid"} {
		rec := do(r, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusNotFound || decodeError(t, rec).Code != "recipe_not_found" {
			t.Fatalf("%s: %d %s", target, rec.Code, rec.Body.String())
		}
	}
}

func TestRelationRoutes(t *testing.T) {
	rel := &stubRelations{}
	r := newRecipeRouter(uuid.New(), &stubRecipes{}, rel, &stubShopping{})
	id := uuid.NewString()

	rec := do(r, http.MethodPost, "/api/recipes/"+id+"/favorite", "", nil)
	if rec.Code != http.StatusCreated || rel.kind != types.RelationFavorite {
		t.Fatalf("favorite: %d %s", rec.Code, rel.kind)
	}
	var sum RecipeSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil || sum.Image != "/media/k.png" || sum.ID.String() != id {
		t.Fatalf("summary: %+v %v", sum, err)
	}

	rel.err = domainagg.NewError(domainagg.CodeValidation, "op", recipes.ErrRelationNotFound.Error(), recipes.ErrRelationNotFound)
	rec = do(r, http.MethodDelete, "/api/recipes/"+id+"/shopping_cart", "", nil)
	if rec.Code != http.StatusBadRequest || rel.kind != types.RelationCart || decodeError(t, rec).Code != "relation_not_found" {
		t.Fatalf("cart remove: %d %s", rec.Code, rec.Body.String())
	}
}

func TestDownloadShoppingCart(t *testing.T) {
	shop := &stubShopping{}
	r := newRecipeRouter(uuid.New(), &stubRecipes{}, &stubRelations{}, shop)

	rec := do(r, http.MethodGet, "/api/recipes/download_shopping_cart", "", nil)
	if rec.Code != http.StatusOK || shop.format != docexport.FormatPDF {
		t.Fatalf("status=%d format=%s", rec.Code, shop.format)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" || rec.Header().Get("Content-Disposition") != `attachment; filename="shopping_list.pdf"` {
		t.Fatalf("headers: %v", rec.Header())
	}

	rec = do(r, http.MethodGet, "/api/recipes/download_shopping_cart?format=png", "", nil)
	if rec.Code != http.StatusOK || shop.format != docexport.FormatPNG {
		t.Fatalf("png: %d %s", rec.Code, shop.format)
	}

	rec = do(r, http.MethodGet, "/api/recipes/download_shopping_cart?format=docx", "", nil)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Field != "format" {
		t.Fatalf("bad format: %d %s", rec.Code, rec.Body.String())
	}
}
