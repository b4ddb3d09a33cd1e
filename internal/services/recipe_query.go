package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// RecipeFilter is the one parsed form of the recipe list query string.
type RecipeFilter struct {
	TagSlugs         []string
	AuthorID         uuid.UUID
	IsFavorited      bool
	IsInShoppingCart bool
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ParseRecipeFilter reads tags (repeatable slugs), author (uuid) and the
// is_favorited / is_in_shopping_cart flags, which accept 0, 1, true or false.
func ParseRecipeFilter(q url.Values) (RecipeFilter, error) {
	var f RecipeFilter
	seen := map[string]struct{}{}
	for _, raw := range q["tags"] {
		slug := strings.TrimSpace(raw)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		f.TagSlugs = append(f.TagSlugs, slug)
	}
	if raw := strings.TrimSpace(q.Get("author")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, invalidFilter("author", raw)
		}
		f.AuthorID = id
	}
	var err error
	if f.IsFavorited, err = parseFlag(q, "is_favorited"); err != nil {
		return f, err
	}
	if f.IsInShoppingCart, err = parseFlag(q, "is_in_shopping_cart"); err != nil {
		return f, err
	}
	return f, nil
}

// ParsePage reads page (1-based) and limit; limit is capped at MaxPageSize.
func ParsePage(q url.Values, defaultLimit int) (Page, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	p := Page{Page: 1, Limit: defaultLimit}
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, invalidFilter("page", raw)
		}
		p.Page = n
	}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, invalidFilter("limit", raw)
		}
		p.Limit = n
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p, nil
}

// Query turns the filter into a repo query. The favorite and cart flags only
// narrow the list for an identified viewer and only when set.
func (f RecipeFilter) Query(viewerID uuid.UUID, page Page) repos.RecipeListQuery {
	q := repos.RecipeListQuery{
		TagSlugs: f.TagSlugs,
		AuthorID: f.AuthorID,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}
	if viewerID != uuid.Nil {
		if f.IsFavorited {
			q.FavoritedBy = viewerID
		}
		if f.IsInShoppingCart {
			q.InCartOf = viewerID
		}
	}
	return q
}

func parseFlag(q url.Values, name string) (bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	switch strings.ToLower(raw) {
	case "":
		return false, nil
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	default:
		return false, invalidFilter(name, raw)
	}
}

func invalidFilter(param, value string) error {
	return fmt.Errorf("%w: %s=%q", recipes.ErrInvalidFilter, param, value)
}
