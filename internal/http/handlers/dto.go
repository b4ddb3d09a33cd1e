package handlers

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/services"
)

// MediaURLFunc turns a stored object key into the URL clients fetch it from.
type MediaURLFunc func(key string) string

type IngredientAmountRequest struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// RecipeRequest is the create/update body. Absent scalar fields keep their
// current value on update.
type RecipeRequest struct {
	Name        *string                   `json:"name"`
	Text        *string                   `json:"text"`
	CookingTime *int                      `json:"cooking_time"`
	Image       *string                   `json:"image"`
	Tags        []uuid.UUID               `json:"tags"`
	Ingredients []IngredientAmountRequest `json:"ingredients"`
}

func (r RecipeRequest) toWrite() services.RecipeWrite {
	out := services.RecipeWrite{
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Image:       r.Image,
		TagIDs:      r.Tags,
	}
	for _, in := range r.Ingredients {
		out.Lines = append(out.Lines, types.LineInput{IngredientID: in.ID, Amount: in.Amount})
	}
	return out
}

type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color string    `json:"color"`
}

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type IngredientAmountResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           *UserResponse              `json:"author"`
	Ingredients      []IngredientAmountResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	Version          int                        `json:"version"`
}

type RecipeSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeSummaryResponse `json:"recipes"`
	RecipesCount int64                   `json:"recipes_count"`
}

// PageResponse mirrors the count/next/previous/results list envelope.
type PageResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func toUserResponse(u *types.User, subscribed bool) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func toRecipeResponse(v services.RecipeView, media MediaURLFunc) RecipeResponse {
	r := v.Recipe
	out := RecipeResponse{
		ID:               r.ID,
		Tags:             make([]TagResponse, 0, len(r.Tags)),
		Author:           toUserResponse(v.Author, v.AuthorSubscribed),
		Ingredients:      make([]IngredientAmountResponse, 0, len(r.Lines)),
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
		Name:             r.Name,
		Image:            mediaURL(media, r.ImageKey),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		Version:          r.Version,
	}
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug, Color: t.Color})
	}
	for _, l := range r.Lines {
		item := IngredientAmountResponse{ID: l.IngredientID, Amount: l.Amount}
		if l.Ingredient != nil {
			item.Name = l.Ingredient.Name
			item.MeasurementUnit = l.Ingredient.MeasurementUnit
		}
		out.Ingredients = append(out.Ingredients, item)
	}
	return out
}

func toRecipeSummaryResponse(s types.RecipeSummary, media MediaURLFunc) RecipeSummaryResponse {
	return RecipeSummaryResponse{ID: s.ID, Name: s.Name, Image: mediaURL(media, s.ImageKey), CookingTime: s.CookingTime}
}

func toSubscriptionResponse(s services.SubscriptionSummary, media MediaURLFunc) SubscriptionResponse {
	out := SubscriptionResponse{
		Recipes:      make([]RecipeSummaryResponse, 0, len(s.Recipes)),
		RecipesCount: s.RecipesCount,
	}
	if u := toUserResponse(s.Author, s.IsSubscribed); u != nil {
		out.UserResponse = *u
	}
	for _, r := range s.Recipes {
		out.Recipes = append(out.Recipes, toRecipeSummaryResponse(r, media))
	}
	return out
}

func mediaURL(media MediaURLFunc, key string) string {
	if key == "" || media == nil {
		return key
	}
	return media(key)
}

// pageLinks builds next/previous URLs from the request URL, keeping every
// other query parameter.
func pageLinks(base *url.URL, page services.Page, count int64) (next, prev *string) {
	if base == nil {
		return nil, nil
	}
	link := func(n int) *string {
		u := *base
		q := u.Query()
		q.Set("page", strconv.Itoa(n))
		q.Set("limit", strconv.Itoa(page.Limit))
		u.RawQuery = q.Encode()
		s := u.String()
		return &s
	}
	if int64(page.Offset()+page.Limit) < count {
		next = link(page.Page + 1)
	}
	if page.Page > 1 {
		prev = link(page.Page - 1)
	}
	return next, prev
}
